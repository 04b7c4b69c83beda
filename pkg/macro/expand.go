package macro

import (
	"context"
	"strconv"
	"strings"
)

// expansion is the state of one Expand call. Nothing in it outlives the call.
type expansion struct {
	ctx     context.Context
	engine  *Engine
	record  Record
	vars    Vars
	logic   Vars
	ip      *lookupResult
	weather *lookupResult
}

func (e *Engine) newExpansion(ctx context.Context, record Record) *expansion {
	vars := NewVars(e.probe, e.locale)
	return &expansion{
		ctx:     ctx,
		engine:  e,
		record:  record,
		vars:    vars,
		logic:   vars.Extend(e.aliases),
		ip:      &lookupResult{name: "ip", lookup: e.ip, fallback: e.config.FallbackIP},
		weather: &lookupResult{name: "weather", lookup: e.weather, fallback: e.config.FallbackWeather},
	}
}

// prefetch runs the lookups whose tokens appear in tokens, IP first, then
// weather, one after the other.
func (x *expansion) prefetch(tokens []Token) {
	needIP, needWeather := scanLookups(tokens)
	if needIP {
		x.ip.resolve(x.ctx, x.engine)
	}
	if needWeather {
		x.weather.resolve(x.ctx, x.engine)
	}
}

func scanLookups(tokens []Token) (ip, weather bool) {
	for _, tok := range tokens {
		switch tok.Type {
		case TokenIP:
			ip = true
		case TokenWeather:
			weather = true
		case TokenNested:
			nip, nweather := scanLookups(tok.Parts)
			ip = ip || nip
			weather = weather || nweather
		}
	}
	return ip, weather
}

func (x *expansion) render(tokens []Token) string {
	var b strings.Builder
	for _, tok := range tokens {
		b.WriteString(x.resolve(tok))
	}
	return b.String()
}

func (x *expansion) resolve(tok Token) string {
	e := x.engine
	switch tok.Type {
	case TokenContext:
		return x.record.Get(tok.Key)
	case TokenEnv:
		return x.vars.String(tok.Key)
	case TokenRand:
		return strconv.Itoa(randomInRange(e.rand, tok.Arg))
	case TokenCoin:
		return flipCoin(e.rand, e.locale)
	case TokenDice:
		return strconv.Itoa(rollDice(e.rand))
	case TokenIP:
		return x.ip.resolve(x.ctx, e)
	case TokenWeather:
		return x.weather.resolve(x.ctx, e)
	case TokenEquality:
		return x.evalEquality(tok)
	case TokenInequality:
		return x.evalInequality(tok)
	case TokenShorthand:
		return x.evalShorthand(tok)
	case TokenNested:
		// Innermost first; the resolved body is then classified like any other.
		body := x.render(tok.Parts)
		return x.resolve(classify(body, openDelim+body+string(closeDelim)))
	default:
		return tok.Value
	}
}
