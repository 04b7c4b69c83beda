package macro

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestTokenize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []Token
	}{
		{
			name:  "plain text",
			input: "Hello World",
			want: []Token{
				{Type: TokenText, Value: "Hello World"},
			},
		},
		{
			name:  "context token",
			input: "Dear /{Name},",
			want: []Token{
				{Type: TokenText, Value: "Dear "},
				{Type: TokenContext, Value: "/{Name}", Key: FieldReceiverName},
				{Type: TokenText, Value: ","},
			},
		},
		{
			name:  "env token canonicalized",
			input: "/{darkMode}",
			want: []Token{
				{Type: TokenEnv, Value: "/{darkMode}", Key: KeyDarkMode},
			},
		},
		{
			name:  "random tokens",
			input: "/{Rand}/{Rand:1-6}/{Coin}/{Dice}",
			want: []Token{
				{Type: TokenRand, Value: "/{Rand}"},
				{Type: TokenRand, Value: "/{Rand:1-6}", Arg: "1-6"},
				{Type: TokenCoin, Value: "/{Coin}"},
				{Type: TokenDice, Value: "/{Dice}"},
			},
		},
		{
			name:  "random tokens are case sensitive",
			input: "/{dice}",
			want: []Token{
				{Type: TokenLiteral, Value: "/{dice}"},
			},
		},
		{
			name:  "lookups",
			input: "/{IP} /{Weather}",
			want: []Token{
				{Type: TokenIP, Value: "/{IP}"},
				{Type: TokenText, Value: " "},
				{Type: TokenWeather, Value: "/{Weather}"},
			},
		},
		{
			name:  "equality",
			input: "/{OS=IOS=Hello iPhone}",
			want: []Token{
				{Type: TokenEquality, Value: "/{OS=IOS=Hello iPhone}", Key: "OS", Arg: "IOS", Output: "Hello iPhone"},
			},
		},
		{
			name:  "inequality",
			input: "/{OS!= IOS=Not iPhone}",
			want: []Token{
				{Type: TokenInequality, Value: "/{OS!= IOS=Not iPhone}", Key: "OS", Arg: "IOS", Output: "Not iPhone"},
			},
		},
		{
			name:  "shorthand",
			input: "/{Mob:On the go}",
			want: []Token{
				{Type: TokenShorthand, Value: "/{Mob:On the go}", Key: "Mob", Output: "On the go"},
			},
		},
		{
			name:  "malformed range falls to shorthand",
			input: "/{Rand:a-b}",
			want: []Token{
				{Type: TokenShorthand, Value: "/{Rand:a-b}", Key: "Rand", Output: "a-b"},
			},
		},
		{
			name:  "nested",
			input: "/{Des:Hi /{name}}!",
			want: []Token{
				{Type: TokenNested, Value: "/{Des:Hi /{name}}", Parts: []Token{
					{Type: TokenText, Value: "Des:Hi "},
					{Type: TokenContext, Value: "/{name}", Key: FieldReceiverName},
				}},
				{Type: TokenText, Value: "!"},
			},
		},
		{
			name:  "empty placeholder",
			input: "/{}",
			want: []Token{
				{Type: TokenLiteral, Value: "/{}"},
			},
		},
		{
			name:  "unterminated",
			input: "a /{name",
			want: []Token{
				{Type: TokenText, Value: "a /{name"},
			},
		},
		{
			name:  "unterminated after complete token",
			input: "/{name} /{role",
			want: []Token{
				{Type: TokenContext, Value: "/{name}", Key: FieldReceiverName},
				{Type: TokenText, Value: " /{role"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Tokenize(tt.input)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Tokenize() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestFindPlaceholders(t *testing.T) {
	got := FindPlaceholders("Hi /{name}, /{Mob:x} and /{unknown} but not {this}")
	want := []string{"/{name}", "/{Mob:x}", "/{unknown}"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("FindPlaceholders() mismatch (-want +got):\n%s", diff)
	}

	if got := FindPlaceholders("nothing here"); len(got) != 0 {
		t.Errorf("FindPlaceholders() = %v, want empty", got)
	}
}

func TestTokenTypeString(t *testing.T) {
	if got := TokenShorthand.String(); got != "Shorthand" {
		t.Errorf("TokenShorthand.String() = %q", got)
	}
	if got := TokenType(99).String(); got != "Unknown" {
		t.Errorf("TokenType(99).String() = %q", got)
	}
}
