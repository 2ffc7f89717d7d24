package core

// Transformer rewrites a Transcript's entries in place after it has been
// fetched and before any renderer sees it.
type Transformer interface {
	Transform(t *Transcript) error
}

// TransformFunc adapts a plain function to the Transformer interface.
type TransformFunc func(t *Transcript) error

// Transform calls f(t).
func (f TransformFunc) Transform(t *Transcript) error {
	return f(t)
}

// Chain runs each transformer over t in order and returns the first error.
// Nil transformers are skipped so callers can pass optional stages directly.
func Chain(t *Transcript, transformers ...Transformer) error {
	for _, tr := range transformers {
		if tr == nil {
			continue
		}
		if err := tr.Transform(t); err != nil {
			return err
		}
	}
	return nil
}
