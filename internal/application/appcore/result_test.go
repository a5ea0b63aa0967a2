package appcore_test

import (
	"testing"

	"github.com/whiteakyloff/metis-back-v2/internal/application/appcore"
)

func TestResult_Success(t *testing.T) {
	r := appcore.Success("hello")

	if !r.IsSuccess() {
		t.Error("expected success")
	}
	if r.IsFailure() {
		t.Error("success must not report failure")
	}
	if r.Value() != "hello" {
		t.Errorf("expected value %q, got %q", "hello", r.Value())
	}
}

func TestResult_Failure(t *testing.T) {
	r := appcore.Failure[string](appcore.CodeUserNotFound, "User not found.")

	if r.IsSuccess() {
		t.Error("failure must not report success")
	}
	if !r.IsFailure() {
		t.Error("expected failure")
	}
	if r.Code() != appcore.CodeUserNotFound {
		t.Errorf("expected code %s, got %s", appcore.CodeUserNotFound, r.Code())
	}
	if r.Message() != "User not found." {
		t.Errorf("unexpected message: %s", r.Message())
	}
}

func TestResult_ValuePanicsOnFailure(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic when reading the value of a failed result")
		}
	}()

	r := appcore.Failure[int](appcore.CodeLoginFailed, "Login failed.")
	_ = r.Value()
}

func TestResult_CodePanicsOnSuccess(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic when reading the code of a successful result")
		}
	}()

	r := appcore.Success(42)
	_ = r.Code()
}

func TestMapFailure(t *testing.T) {
	src := appcore.Failure[int](appcore.CodeDeckNotFound, "Deck not found.")

	dst := appcore.MapFailure[int, string](src)

	if !dst.IsFailure() {
		t.Fatal("mapped result must stay a failure")
	}
	if dst.Code() != src.Code() || dst.Message() != src.Message() {
		t.Error("mapping must keep code and message")
	}
}
