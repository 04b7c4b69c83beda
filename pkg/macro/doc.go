// Package macro expands placeholder tokens in letter content.
//
// Placeholders are written /{...}. They draw on a context record, the viewing
// environment, randomness, two network lookups and a small conditional
// language:
//
//	/{name} /{role} /{sender}      - receiver name, receiver role, sender name
//	/{Device} /{OS} /{Browser}     - Mobile|Desktop, IOS|ANDROID|..., Chrome|Safari|...
//	/{Resolution} /{DarkMode}      - "FHD Landscape", Dark|Light
//	/{year} /{weekday} /{time}     - localized date and clock values
//	/{Rand} /{Rand:1-10}           - random integer, 1-100 by default
//	/{Coin} /{Dice}                - coin flip label, 1-6
//	/{IP} /{Weather}               - network lookups with fallback labels
//	/{OS=IOS=text}                 - text when OS is IOS (case-insensitive)
//	/{Browser!=Safari=text}        - text unless Browser is Safari
//	/{Mob:text} /{Des:text}        - text on mobile or desktop
//	/{Android:text} /{Chrome:text} - text on a given OS or browser
//
// Anything else between /{ and } is left untouched.
//
// Basic Usage:
//
//	engine := macro.New(macro.WithProbe(probe.Static{
//	    UA:    r.UserAgent(),
//	    Width: 1920, Height: 1080,
//	}))
//
//	out := engine.Expand(ctx, "Hello /{name}, happy /{weekday}!", macro.Record{
//	    macro.FieldReceiverName: "Jiwoo",
//	})
//
// Configuration is read from MAILMACRO_* environment variables; see Config.
package macro
