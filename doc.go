// Copyright (C) 2025 Michael J. Fromberger. All Rights Reserved.

// Package jevents translates JSON descriptions of hardware
// performance-monitoring (PMU) events into perf kernel-syntax event strings.
//
// An event file is a JSON array of flat objects, one per event, in which
// every value is a string (numeric fields are string-encoded):
//
//	[
//	  {
//	    "EventName": "INST_RETIRED.ANY",
//	    "EventCode": "0xc0",
//	    "UMask": "0x0",
//	    "BriefDescription": "Instructions retired."
//	  }
//	]
//
// # Tokenizing
//
// The Tokenize function scans a source buffer into a flat array of Token
// values in source order. Each token records its kind, its byte span in the
// source, and for objects and arrays a count of direct child tokens. The
// translator walks this array positionally; it never revisits the source
// grammar.
//
//	toks, err := jevents.Tokenize(data)
//	if err != nil {
//	   log.Fatalf("Tokenize failed: %v", err)
//	}
//
// # Translating
//
// A Translator converts each object of an event file into a triple of
// strings: a lower-cased event name, a comma-joined key=value encoding in
// the syntax accepted by the kernel perf subsystem, and a human-readable
// description. Each triple is delivered to an EventFunc callback:
//
//	tr := jevents.NewTranslator()
//	err := tr.Translate(data, func(name, event, desc string) error {
//	   fmt.Printf("%s\t%s\t%s\n", name, event, desc)
//	   return nil
//	})
//
// The strings passed to the callback are only valid for the duration of the
// call; the callback must copy anything it needs to retain. If the callback
// reports an error, translation stops and that error is returned to the
// caller.
//
// An object that yields no name or no event encoding is skipped without
// error. Structural violations of the event-file shape abort the whole
// translation with an error of concrete type [*StructError].
//
// TranslateFile reads an event file from disk. With an empty path the file
// is resolved from the environment and the host CPU identifier; see
// DefaultPath.
package jevents
