package dictionary

import "context"

// Repository is the outbound port for dictionary persistence. The whole
// dictionary is written on every mutation; there is no partial update.
//
// Load never fails hard on malformed stored data: implementations fall back
// to a fresh default dictionary and report the problem through logging, so
// a corrupt store cannot take the application down.
type Repository interface {
	Load(ctx context.Context) (*Dictionary, error)
	Save(ctx context.Context, d *Dictionary) error
}
