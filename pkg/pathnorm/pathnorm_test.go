package pathnorm

import "testing"

func TestNormalize(t *testing.T) {
	cases := map[string]string{
		`\\?\C:\work\build\lib\libfoo.a`: "C:/work/build/lib/libfoo.a",
		`C:\work\build\lib\libfoo.a`:     "C:/work/build/lib/libfoo.a",
		"/home/user/build/lib/libfoo.a":  "/home/user/build/lib/libfoo.a",
	}
	for in, want := range cases {
		if got := Normalize(in); got != want {
			t.Errorf("Normalize(%q) = %q, want %q", in, got, want)
		}
	}
}
