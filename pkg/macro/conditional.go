package macro

import "strings"

// equals compares the environment value of key with want, ignoring case. A
// key outside the environment never matches.
func (x *expansion) equals(key, want string) bool {
	current, ok := x.vars[key]
	if !ok {
		return false
	}
	return strings.ToLower(FormatValue(current)) == strings.ToLower(want)
}

func (x *expansion) evalEquality(tok Token) string {
	if x.equals(tok.Key, tok.Arg) {
		return tok.Output
	}
	return ""
}

func (x *expansion) evalInequality(tok Token) string {
	if x.equals(tok.Key, tok.Arg) {
		return ""
	}
	return tok.Output
}

// evalShorthand shows the output when the key is truthy in the logic view,
// names the current OS (any case) or names the current browser exactly.
func (x *expansion) evalShorthand(tok Token) string {
	if isTruthy(x.logic[tok.Key]) ||
		x.vars.String(KeyOS) == strings.ToUpper(tok.Key) ||
		x.vars.String(KeyBrowser) == tok.Key {
		return tok.Output
	}
	return ""
}
