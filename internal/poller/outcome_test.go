package poller

import (
	"errors"
	"testing"
)

func TestLoadingErrorTextIsExact(t *testing.T) {
	cause := errors.New("500 Internal Server Error")
	err := &LoadingError{Cause: cause}

	if err.Error() != "loading..." || Loading != "loading..." {
		t.Fatalf("expected exact sentinel text, got %q", err.Error())
	}
	if !errors.Is(err, ErrLoading) || !IsLoading(err) {
		t.Fatalf("expected loading error to match ErrLoading")
	}
	if !errors.Is(err, cause) {
		t.Fatalf("expected cause to unwrap")
	}
	if loadingCause(err) != cause {
		t.Fatalf("expected cause from loadingCause")
	}
}

func TestBareSentinelHasNoCause(t *testing.T) {
	if !IsLoading(ErrLoading) {
		t.Fatalf("expected ErrLoading to be loading")
	}
	if loadingCause(ErrLoading) != nil {
		t.Fatalf("expected no cause for bare sentinel")
	}
	if IsLoading(errors.New("loading...")) {
		t.Fatalf("expected a look-alike error not to match")
	}
}

func TestOutcomeDelivered(t *testing.T) {
	if !(Outcome{}).Delivered() {
		t.Fatalf("expected zero outcome to count as delivered")
	}
	if (Outcome{Err: ErrLoading}).Delivered() {
		t.Fatalf("expected failed outcome not delivered")
	}
}
