package protocol

import "testing"

func TestFormatCommand(t *testing.T) {
	tests := []struct {
		name string
		verb string
		args []any
		want string
	}{
		{
			name: "no arguments",
			verb: VerbStopSound,
			want: "DoStopSound()",
		},
		{
			name: "single integer",
			verb: VerbPlaySound,
			args: []any{7},
			want: "DoPlaySound(7)",
		},
		{
			name: "integer and booleans",
			verb: VerbPlaySound,
			args: []any{7, true, false},
			want: "DoPlaySound(7, true, false)",
		},
		{
			name: "quoted string",
			verb: VerbSearch,
			args: []any{"air horn"},
			want: `DoSearch("air horn")`,
		},
		{
			name: "string with embedded quote stays unescaped",
			verb: VerbSearch,
			args: []any{`say "hi"`},
			want: `DoSearch("say "hi"")`,
		},
		{
			name: "string then integers",
			verb: VerbAddSound,
			args: []any{`C:\sounds\horn.mp3`, 2, 5},
			want: `DoAddSound("C:\sounds\horn.mp3", 2, 5)`,
		},
		{
			name: "negative integer",
			verb: VerbJumpMs,
			args: []any{-1500},
			want: "DoJumpMs(-1500)",
		},
		{
			name: "two booleans",
			verb: VerbGetCategories,
			args: []any{true, false},
			want: "GetCategories(true, false)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FormatCommand(tt.verb, tt.args...)
			if got != tt.want {
				t.Errorf("FormatCommand() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestResponseClassification(t *testing.T) {
	tests := []struct {
		name        string
		resp        string
		wantSuccess bool
		wantFailure bool
	}{
		{
			name:        "plain success",
			resp:        "R-200",
			wantSuccess: true,
		},
		{
			name:        "success with diagnostic",
			resp:        "R-200 OK",
			wantSuccess: true,
		},
		{
			name:        "numeric failure code",
			resp:        "R-404 sound not found",
			wantFailure: true,
		},
		{
			name:        "bare R line",
			resp:        "R",
			wantFailure: true,
		},
		{
			name: "number payload",
			resp: "12345",
		},
		{
			name: "xml payload",
			resp: `<Soundlist><Sound index="1"/></Soundlist>`,
		},
		{
			name: "empty",
			resp: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsSuccess(tt.resp); got != tt.wantSuccess {
				t.Errorf("IsSuccess(%q) = %v, want %v", tt.resp, got, tt.wantSuccess)
			}
			if got := IsFailure(tt.resp); got != tt.wantFailure {
				t.Errorf("IsFailure(%q) = %v, want %v", tt.resp, got, tt.wantFailure)
			}
		})
	}
}

func TestTrimResponse(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "trailing nul", in: "R-200\x00", want: "R-200"},
		{name: "trailing newline", in: "100\r\n", want: "100"},
		{name: "nul then whitespace", in: " 42 \x00\x00", want: "42"},
		{name: "clean", in: "PLAYING", want: "PLAYING"},
		{name: "empty", in: "", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := TrimResponse(tt.in); got != tt.want {
				t.Errorf("TrimResponse(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
