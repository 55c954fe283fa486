package llm

import "context"

// DummyModel returns an empty field document without calling any API.
// Every rule then sees its inputs as missing, which exercises the
// missing-clause paths of the engines in development setups.
type DummyModel struct{}

// Name returns the provider name.
func (DummyModel) Name() string { return "dummy" }

// Complete returns an empty JSON object unless ctx is already done.
func (DummyModel) Complete(ctx context.Context, _, _ string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	return "{}", nil
}
