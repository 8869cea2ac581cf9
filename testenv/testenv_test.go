package testenv_test

import (
	"testing"

	"github.com/noa-physics/dcsdata"
	"github.com/noa-physics/dcsdata/testenv"
)

func TestTensorAfterMain(t *testing.T) {
	t.Parallel()

	for _, n := range dcsdata.Names() {
		t.Run(string(n), func(t *testing.T) {
			t.Parallel()

			got := testenv.Tensor(t, n)
			want := float64(len(n))
			if v := got.Data().([]float64)[0]; v != want {
				t.Errorf("Tensor(%s) = %v, want %v", n, v, want)
			}
			if testenv.Tensor(t, n) != got {
				t.Errorf("Tensor(%s) returned a different tensor on the second call", n)
			}
		})
	}
}

func TestCacheInitializedBeforeTests(t *testing.T) {
	t.Parallel()

	cache := dcsdata.NewCache()
	for _, n := range cache.Names() {
		if !cache.Loaded(n) {
			t.Errorf("%s not loaded before the test ran", n)
		}
	}
	if r := cache.Report(); !r.OK() {
		t.Errorf("Report() not OK: %v", r.Err())
	}
}
