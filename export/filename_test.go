package export

import "testing"

func TestFilename(t *testing.T) {
	tests := []struct {
		title string
		want  string
	}{
		{"Depto luminoso en Las Condes", "depto-luminoso-en-las-condes"},
		{"Casa 3D/2B · Ñuñoa!!", "casa-3d2b-uoa"},
		{"   ", ""},
		{"", "ficha-propiedad"},
		{"N/D", "ficha-propiedad"},
		{"Propiedad en venta", "ficha-propiedad"},
		{"···", "ficha-propiedad"},
		{"Ya-con-guiones", "ya-con-guiones"},
	}

	for _, tt := range tests {
		want := tt.want
		if want == "" {
			want = DefaultFilename
		}
		if got := Filename(tt.title); got != want {
			t.Errorf("Filename(%q) = %q; want %q", tt.title, got, want)
		}
	}
}
