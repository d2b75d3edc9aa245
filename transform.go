package hoard

import "context"

// chainResult is the outcome of one pass over the transform chain.
type chainResult struct {
	data    []byte
	applied int // transforms that ran
	crypto  int // cryptographic transforms that ran
}

// forward folds data through transforms in registration order.
// Cryptographic transforms are skipped unless encrypt is set.
func forward(ctx context.Context, transforms []Transform, data []byte, encrypt bool) (chainResult, error) {
	res := chainResult{data: data}
	for _, t := range transforms {
		if t.Kind().gated() && !encrypt {
			continue
		}
		if err := ctx.Err(); err != nil {
			return res, err
		}
		out, err := t.AfterSerialize(ctx, res.data)
		if err != nil {
			return res, newTransformError(t.Name(), opAfterSerialize, err)
		}
		res.data = out
		res.applied++
		if t.Kind() == KindCryptographic {
			res.crypto++
		}
	}
	return res, nil
}

// reverse folds data through transforms in reverse registration order.
// Cryptographic transforms are skipped unless encrypted is set.
func reverse(ctx context.Context, transforms []Transform, data []byte, encrypted bool) (chainResult, error) {
	res := chainResult{data: data}
	for i := len(transforms) - 1; i >= 0; i-- {
		t := transforms[i]
		if t.Kind().gated() && !encrypted {
			continue
		}
		if err := ctx.Err(); err != nil {
			return res, err
		}
		out, err := t.BeforeDeserialize(ctx, res.data)
		if err != nil {
			return res, newTransformError(t.Name(), opBeforeDeserialize, err)
		}
		res.data = out
		res.applied++
		if t.Kind() == KindCryptographic {
			res.crypto++
		}
	}
	return res, nil
}
