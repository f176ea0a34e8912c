package uri_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/sarifpatch/pkg/uri"
)

func TestToLocalPathFor(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		raw     string
		unix    string
		windows string
	}{
		{"bare file", "file.ext", "file.ext", "file.ext"},
		{"dot segments", "./a/../file.ext", "file.ext", "file.ext"},
		{"opaque relative", "file:file.ext", "file.ext", "file.ext"},
		{"nested relative", "src/main/kotlin/App.kt", "src/main/kotlin/App.kt", `src\main\kotlin\App.kt`},
		{"percent encoded relative", "Program%20Files", "Program Files", "Program Files"},
		{"triple slash unix", "file:///etc/passwd", "/etc/passwd", ""},
		{"single slash unix", "file:/etc/passwd", "/etc/passwd", ""},
		{"localhost authority", "file://localhost/etc/passwd", "/etc/passwd", ""},
		{"bare unix absolute", "/etc/passwd", "/etc/passwd", ""},
		{"encoded unix absolute", "%2Fetc%2Fpasswd", "/etc/passwd", ""},
		{"triple slash drive", "file:///C:/autoexec.bat", "", `C:\autoexec.bat`},
		{"single slash drive", "file:/C:/autoexec.bat", "", `C:\autoexec.bat`},
		{"drive authority", "file://C:/autoexec.bat", "", `C:\autoexec.bat`},
		{"bare drive", "C:/autoexec.bat", "", `C:\autoexec.bat`},
		{"encoded backslash drive", "C:%5Cautoexec.bat", "", `C:\autoexec.bat`},
		{"fully encoded drive", "C%3A%2Fautoexec.bat", "", `C:\autoexec.bat`},
		{"lowercase drive kept", "file:///d:/Users/x/../y.cs", "", `d:\Users\y.cs`},
		{"unc four slashes", "file:////server/share/dir/f.cs", "", `\\server\share\dir\f.cs`},
		{"unc authority", "file://server/share/f.cs", "", `\\server\share\f.cs`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := uri.ToLocalPathFor(tt.raw, uri.Unix)
			if tt.unix == "" {
				var foreign *uri.ForeignPathError
				require.ErrorAs(t, err, &foreign, "unix: got %q", got)
				assert.Equal(t, uri.Windows, foreign.Want)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.unix, got)
			}

			got, err = uri.ToLocalPathFor(tt.raw, uri.Windows)
			if tt.windows == "" {
				var foreign *uri.ForeignPathError
				require.ErrorAs(t, err, &foreign, "windows: got %q", got)
				assert.Equal(t, uri.Unix, foreign.Want)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.windows, got)
			}
		})
	}
}

func TestForeignPathErrorMessage(t *testing.T) {
	t.Parallel()

	_, err := uri.ToLocalPathFor("file:///C:/autoexec.bat", uri.Unix)
	require.Error(t, err)
	assert.Equal(t,
		`current OS is not Windows; unable to construct an absolute Windows path from "/C:/autoexec.bat"`,
		err.Error())

	_, err = uri.ToLocalPathFor("file:///etc/passwd", uri.Windows)
	require.Error(t, err)
	assert.Equal(t,
		`current OS is not UNIX; unable to construct an absolute UNIX path from "/etc/passwd"`,
		err.Error())
}

func TestToLocalPathEmpty(t *testing.T) {
	t.Parallel()

	_, err := uri.ToLocalPath("  ")
	assert.True(t, errors.Is(err, uri.ErrEmpty))
}

func TestDropFileScheme(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want string
	}{
		{"file:///C:/Users/Mary/code/TheProject/", "C:/Users/Mary/code/TheProject/"},
		{"file:///home/user/project/", "/home/user/project/"},
		{"src/", "src/"},
		{"/C:/x", "C:/x"},
		{"", ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, uri.DropFileScheme(tt.in), "DropFileScheme(%q)", tt.in)
	}
}

func TestIsAbsolute(t *testing.T) {
	t.Parallel()

	for _, p := range []string{"/etc", `\share`, "C:/x", `d:\x`, "C:"} {
		assert.True(t, uri.IsAbsolute(p), p)
	}
	for _, p := range []string{"", "src", "./x", "C", "1:/x"} {
		assert.False(t, uri.IsAbsolute(p), p)
	}
}
