package reql

import "rethinkgo/internal/proto"

// Match creates a MATCH term, testing a string against a RE2 pattern and
// returning match/group details or nil.
func (t Term) Match(pattern string) Term {
	return Term{termType: proto.TermMatch, args: []Term{t, Datum(pattern)}}
}

// Split creates a SPLIT term, splitting a string on whitespace (no
// arguments) or the given delimiter.
func (t Term) Split(delim ...string) Term {
	if len(delim) == 0 {
		return Term{termType: proto.TermSplit, args: []Term{t}}
	}
	return Term{termType: proto.TermSplit, args: []Term{t, Datum(delim[0])}}
}

// Upcase creates an UPCASE term.
func (t Term) Upcase() Term {
	return Term{termType: proto.TermUpcase, args: []Term{t}}
}

// Downcase creates a DOWNCASE term.
func (t Term) Downcase() Term {
	return Term{termType: proto.TermDowncase, args: []Term{t}}
}

// ToJSONString creates a TO_JSON_STRING term, serializing t to a JSON
// string server-side.
func (t Term) ToJSONString() Term {
	return Term{termType: proto.TermToJSONString, args: []Term{t}}
}

// JSON creates a JSON term, parsing a JSON string into a ReQL value.
func JSON(s string) Term {
	return Term{termType: proto.TermJSON, args: []Term{Datum(s)}}
}

// Now creates a NOW term, the server's current time.
func Now() Term {
	return Term{termType: proto.TermNow}
}

// ISO8601 creates an ISO8601 term, parsing an ISO 8601 timestamp string.
func ISO8601(s string) Term {
	return Term{termType: proto.TermISO8601, args: []Term{Datum(s)}}
}

// EpochTime creates an EPOCH_TIME term, from a Unix timestamp in seconds.
func EpochTime(epoch interface{}) Term {
	return Term{termType: proto.TermEpochTime, args: []Term{toTerm(epoch)}}
}

// Time creates a TIME term for a calendar date at midnight in timezone.
func Time(year, month, day int, timezone string) Term {
	return Term{
		termType: proto.TermTime,
		args:     []Term{Datum(year), Datum(month), Datum(day), Datum(timezone)},
	}
}

// TimeAt creates a TIME term for a calendar date and time of day in
// timezone.
func TimeAt(year, month, day, hour, minute, second int, timezone string) Term {
	return Term{
		termType: proto.TermTime,
		args: []Term{
			Datum(year), Datum(month), Datum(day),
			Datum(hour), Datum(minute), Datum(second),
			Datum(timezone),
		},
	}
}

// ToISO8601 creates a TO_ISO8601 term.
func (t Term) ToISO8601() Term {
	return Term{termType: proto.TermToISO8601, args: []Term{t}}
}

// ToEpochTime creates a TO_EPOCH_TIME term.
func (t Term) ToEpochTime() Term {
	return Term{termType: proto.TermToEpochTime, args: []Term{t}}
}

// Date creates a DATE term, truncating a time to the start of its day.
func (t Term) Date() Term {
	return Term{termType: proto.TermDate, args: []Term{t}}
}

// TimeOfDay creates a TIME_OF_DAY term, the number of seconds since
// midnight.
func (t Term) TimeOfDay() Term {
	return Term{termType: proto.TermTimeOfDay, args: []Term{t}}
}

// Timezone creates a TIMEZONE term, a time's timezone offset string.
func (t Term) Timezone() Term {
	return Term{termType: proto.TermTimezone, args: []Term{t}}
}

// Year creates a YEAR term.
func (t Term) Year() Term { return Term{termType: proto.TermYear, args: []Term{t}} }

// Month creates a MONTH term.
func (t Term) Month() Term { return Term{termType: proto.TermMonth, args: []Term{t}} }

// Day creates a DAY term.
func (t Term) Day() Term { return Term{termType: proto.TermDay, args: []Term{t}} }

// DayOfWeek creates a DAY_OF_WEEK term.
func (t Term) DayOfWeek() Term { return Term{termType: proto.TermDayOfWeek, args: []Term{t}} }

// DayOfYear creates a DAY_OF_YEAR term.
func (t Term) DayOfYear() Term { return Term{termType: proto.TermDayOfYear, args: []Term{t}} }

// Hours creates an HOURS term.
func (t Term) Hours() Term { return Term{termType: proto.TermHours, args: []Term{t}} }

// Minutes creates a MINUTES term.
func (t Term) Minutes() Term { return Term{termType: proto.TermMinutes, args: []Term{t}} }

// Seconds creates a SECONDS term.
func (t Term) Seconds() Term { return Term{termType: proto.TermSeconds, args: []Term{t}} }

// InTimezone creates an IN_TIMEZONE term, converting a time to tz.
func (t Term) InTimezone(tz string) Term {
	return Term{termType: proto.TermInTimezone, args: []Term{t, Datum(tz)}}
}

// During creates a DURING term, testing whether a time falls in
// [start, end).
func (t Term) During(start, end Term) Term {
	return Term{termType: proto.TermDuring, args: []Term{t, start, end}}
}

// Monday returns the MONDAY constant term, usable with DayOfWeek.
func Monday() Term { return Term{termType: proto.TermMonday} }

// Tuesday returns the TUESDAY constant term.
func Tuesday() Term { return Term{termType: proto.TermTuesday} }

// Wednesday returns the WEDNESDAY constant term.
func Wednesday() Term { return Term{termType: proto.TermWednesday} }

// Thursday returns the THURSDAY constant term.
func Thursday() Term { return Term{termType: proto.TermThursday} }

// Friday returns the FRIDAY constant term.
func Friday() Term { return Term{termType: proto.TermFriday} }

// Saturday returns the SATURDAY constant term.
func Saturday() Term { return Term{termType: proto.TermSaturday} }

// Sunday returns the SUNDAY constant term.
func Sunday() Term { return Term{termType: proto.TermSunday} }

// January returns the JANUARY constant term, usable with Month.
func January() Term { return Term{termType: proto.TermJanuary} }

// February returns the FEBRUARY constant term.
func February() Term { return Term{termType: proto.TermFebruary} }

// March returns the MARCH constant term.
func March() Term { return Term{termType: proto.TermMarch} }

// April returns the APRIL constant term.
func April() Term { return Term{termType: proto.TermApril} }

// May returns the MAY constant term.
func May() Term { return Term{termType: proto.TermMay} }

// June returns the JUNE constant term.
func June() Term { return Term{termType: proto.TermJune} }

// July returns the JULY constant term.
func July() Term { return Term{termType: proto.TermJuly} }

// August returns the AUGUST constant term.
func August() Term { return Term{termType: proto.TermAugust} }

// September returns the SEPTEMBER constant term.
func September() Term { return Term{termType: proto.TermSeptember} }

// October returns the OCTOBER constant term.
func October() Term { return Term{termType: proto.TermOctober} }

// November returns the NOVEMBER constant term.
func November() Term { return Term{termType: proto.TermNovember} }

// December returns the DECEMBER constant term.
func December() Term { return Term{termType: proto.TermDecember} }

// UUID creates a UUID term, a random (or, given a seed string,
// deterministic) v3/v5-style identifier.
func UUID(seed ...string) Term {
	if len(seed) == 0 {
		return Term{termType: proto.TermUUID}
	}
	return Term{termType: proto.TermUUID, args: []Term{Datum(seed[0])}}
}

// Binary wraps raw bytes as a BINARY pseudo-type term.
func Binary(data []byte) Term {
	return Datum(data)
}

// Random creates a RANDOM term: a random number, optionally bounded by 1
// or 2 numeric arguments and opts' "float" flag.
func Random(args ...interface{}) Term {
	var opts OptArgs
	termArgs := args
	if n := len(args); n > 0 {
		if o, ok := args[n-1].(OptArgs); ok {
			opts = o
			termArgs = args[:n-1]
		}
	}
	argTerms := make([]Term, len(termArgs))
	for i, a := range termArgs {
		argTerms[i] = toTerm(a)
	}
	return Term{termType: proto.TermRandom, args: argTerms, opts: opts}
}
