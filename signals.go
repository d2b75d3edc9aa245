package hoard

import (
	"context"
	"path/filepath"
	"time"

	"github.com/zoobzio/capitan"
)

// Signals for store events.
var (
	SignalStoreCreated        = capitan.NewSignal("hoard.store.created", "Store instantiated")
	SignalSaveStart           = capitan.NewSignal("hoard.save.start", "Save operation beginning")
	SignalSaveComplete        = capitan.NewSignal("hoard.save.complete", "Save operation finished")
	SignalGetComplete         = capitan.NewSignal("hoard.get.complete", "Get operation finished")
	SignalListComplete        = capitan.NewSignal("hoard.list.complete", "List operation finished")
	SignalDeleteComplete      = capitan.NewSignal("hoard.delete.complete", "Delete operation finished")
	SignalMaterializeComplete = capitan.NewSignal("hoard.materialize.complete", "Object materialization finished")
)

// Keys for typed event data.
var (
	KeyPath           = capitan.NewStringKey("path")
	KeyExtension      = capitan.NewStringKey("extension")
	KeyContentType    = capitan.NewStringKey("content_type")
	KeyTypeName       = capitan.NewStringKey("type_name")
	KeySize           = capitan.NewIntKey("size")
	KeyDuration       = capitan.NewDurationKey("duration")
	KeyError          = capitan.NewErrorKey("error")
	KeyTransformCount = capitan.NewIntKey("transform_count")
	KeyCryptoCount    = capitan.NewIntKey("crypto_count")
	KeyFileCount      = capitan.NewIntKey("file_count")
	KeyExtensionCount = capitan.NewIntKey("extension_count")
)

// emitStoreCreated emits an event when a store is created.
func emitStoreCreated(ctx context.Context, transforms, extensions int) {
	capitan.Emit(ctx, SignalStoreCreated,
		KeyTransformCount.Field(transforms),
		KeyExtensionCount.Field(extensions),
	)
}

// emitSaveStart emits an event when save begins.
func emitSaveStart(ctx context.Context, path string) {
	capitan.Emit(ctx, SignalSaveStart,
		KeyPath.Field(path),
		KeyExtension.Field(filepath.Ext(path)),
	)
}

// emitSaveComplete emits an event when save finishes.
func emitSaveComplete(ctx context.Context, path, contentType string, size int, duration time.Duration, res chainResult, err error) {
	fields := []capitan.Field{
		KeyPath.Field(path),
		KeyContentType.Field(contentType),
		KeySize.Field(size),
		KeyDuration.Field(duration),
		KeyTransformCount.Field(res.applied),
		KeyCryptoCount.Field(res.crypto),
	}
	if err != nil {
		fields = append(fields, KeyError.Field(err))
		capitan.Error(ctx, SignalSaveComplete, fields...)
	} else {
		capitan.Emit(ctx, SignalSaveComplete, fields...)
	}
}

// emitGetComplete emits an event when get finishes.
func emitGetComplete(ctx context.Context, path string, size int, duration time.Duration, err error) {
	fields := []capitan.Field{
		KeyPath.Field(path),
		KeySize.Field(size),
		KeyDuration.Field(duration),
	}
	if err != nil {
		fields = append(fields, KeyError.Field(err))
		capitan.Error(ctx, SignalGetComplete, fields...)
	} else {
		capitan.Emit(ctx, SignalGetComplete, fields...)
	}
}

// emitListComplete emits an event when a directory listing finishes.
func emitListComplete(ctx context.Context, dir, extension string, count int, duration time.Duration, err error) {
	fields := []capitan.Field{
		KeyPath.Field(dir),
		KeyExtension.Field(extension),
		KeyFileCount.Field(count),
		KeyDuration.Field(duration),
	}
	if err != nil {
		fields = append(fields, KeyError.Field(err))
		capitan.Error(ctx, SignalListComplete, fields...)
	} else {
		capitan.Emit(ctx, SignalListComplete, fields...)
	}
}

// emitDeleteComplete emits an event when delete finishes.
func emitDeleteComplete(ctx context.Context, path string, err error) {
	if err != nil {
		capitan.Error(ctx, SignalDeleteComplete, KeyPath.Field(path), KeyError.Field(err))
		return
	}
	capitan.Emit(ctx, SignalDeleteComplete, KeyPath.Field(path))
}

// emitMaterializeComplete emits an event when an object is decoded.
func emitMaterializeComplete(ctx context.Context, path, contentType, typeName string, duration time.Duration, res chainResult, err error) {
	fields := []capitan.Field{
		KeyPath.Field(path),
		KeyContentType.Field(contentType),
		KeyTypeName.Field(typeName),
		KeyDuration.Field(duration),
		KeyTransformCount.Field(res.applied),
		KeyCryptoCount.Field(res.crypto),
	}
	if err != nil {
		fields = append(fields, KeyError.Field(err))
		capitan.Error(ctx, SignalMaterializeComplete, fields...)
	} else {
		capitan.Emit(ctx, SignalMaterializeComplete, fields...)
	}
}
