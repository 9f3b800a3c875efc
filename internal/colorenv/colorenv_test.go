package colorenv

import "testing"

func TestShouldDisableColor_NoColorEnvVar(t *testing.T) {
	t.Setenv("NO_COLOR", "1")
	if !ShouldDisableColor() {
		t.Fatalf("expected color disabled when NO_COLOR is set")
	}
}
