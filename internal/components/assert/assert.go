// Package assert guards constructor arguments that are programmer errors
// rather than runtime conditions.
package assert

func NotNil(value any) {
	if value == nil {
		panic("expected value to be not nil")
	}
}
