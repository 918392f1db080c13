package python

import "testing"

func TestDependencyName(t *testing.T) {
	tests := []struct {
		req  string
		want string
	}{
		{"requests", "requests"},
		{"pkg>=1.0,<2.0", "pkg"},
		{"pydantic==2.7.1", "pydantic"},
		{"uvicorn[standard]>=0.30", "uvicorn"},
		{"tomli; python_version < '3.11'", "tomli"},
		{"django~=5.0", "django"},
		{"numpy!=1.25.0", "numpy"},
		{"foo<3", "foo"},
		{"  spaced-name  >= 1", "spaced-name"},
		{"zope.interface", "zope.interface"},
		{">=1.0", ""},
		{"", ""},
		{"   ", ""},
	}

	for _, tt := range tests {
		t.Run(tt.req, func(t *testing.T) {
			if got := DependencyName(tt.req); got != tt.want {
				t.Errorf("DependencyName(%q) = %q, want %q", tt.req, got, tt.want)
			}
		})
	}
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"Requests", "requests"},
		{"typing_extensions", "typing-extensions"},
		{"zope.interface", "zope-interface"},
		{"  Flask-SQLAlchemy ", "flask-sqlalchemy"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := Normalize(tt.input); got != tt.want {
				t.Errorf("Normalize(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
