package hoard

import "testing"

func TestResolve(t *testing.T) {
	special := &stubCodec{contentType: "special"}
	shadow := &stubCodec{contentType: "shadow"}

	cfg, err := NewConfig(withStubCodecs(),
		WithExtension(special, ".special"),
		WithExtension(shadow, ".special", ".json"),
	)
	if err != nil {
		t.Fatalf("NewConfig() error: %v", err)
	}

	tests := []struct {
		path string
		want Codec
	}{
		{"data.json", stubJSON},
		{"dir/data.yaml", stubYAML},
		{"data.bin", stubBinary},
		{"data", stubBinary},
		{"data.special", special},
		{"data.SPECIAL", stubBinary},
		{"data.yml", stubBinary},
		{"data.persisted", stubBinary},
		{"archive.tar.json", stubJSON},
		{".hidden", stubBinary},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			if got := cfg.Resolve(tt.path); got != tt.want {
				t.Errorf("Resolve(%q) = %s, want %s", tt.path, got.ContentType(), tt.want.ContentType())
			}
		})
	}
}
