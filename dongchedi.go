// Package dongchedi extracts structured vehicle data from dongchedi.com
// marketplace and configuration pages. It drives a headless browser to
// render the JavaScript-heavy pages, parses the spec tables and option
// groups embedded in the rendered DOM, normalizes localized values into a
// typed schema, translates field labels and values through an external
// service, and assembles the result into an immutable vehicle record for
// report rendering.
//
// This package contains domain types and interfaces following Ben
// Johnson's Standard Package Layout. Implementations live in
// subdirectories named after their primary dependency (e.g., rod/,
// goquery/, gemini/, sqlite/).
package dongchedi
