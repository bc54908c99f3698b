package auth

import "testing"

func TestVerifyAdminToken(t *testing.T) {
	tests := []struct {
		name   string
		secret string
		token  string
		want   bool
	}{
		{"matching token", "s3cret", "s3cret", true},
		{"wrong token", "s3cret", "guess", false},
		{"empty token", "s3cret", "", false},
		{"empty secret", "", "anything", false},
		{"both empty", "", "", false},
		{"prefix is not enough", "s3cret", "s3c", false},
		{"longer token with matching prefix", "s3cret", "s3cret-extra", false},
		{"case sensitive", "s3cret", "S3CRET", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := NewVerifier(tt.secret)
			if got := v.VerifyAdminToken(tt.token); got != tt.want {
				t.Errorf("VerifyAdminToken(%q) = %v, want %v", tt.token, got, tt.want)
			}
		})
	}
}
