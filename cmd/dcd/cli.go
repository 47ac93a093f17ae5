package main

import (
	"context"
	"io"

	dongchedi "github.com/lmh17ever/dongchedi-parser"
	"github.com/lmh17ever/dongchedi-parser/dict"
	"github.com/lmh17ever/dongchedi-parser/parse"
	"github.com/lmh17ever/dongchedi-parser/sqlite"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx      context.Context
	Stdout   io.Writer
	Stderr   io.Writer
	DB       *sqlite.DB
	Records  dongchedi.RecordService
	Dict     *dict.Table
	Renderer dongchedi.RecordRenderer
	Parser   *parse.Parser
	OutDir   string
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Parse   ParseCmd   `cmd:"" help:"Parse a dongchedi listing or configuration page"`
	History HistoryCmd `cmd:"" help:"List previously parsed records"`
	Show    ShowCmd    `cmd:"" help:"Render a stored record as markdown"`
	Delete  DeleteCmd  `cmd:"" help:"Delete a stored record"`
	Dict    DictCmd    `cmd:"" help:"Inspect the label dictionary"`
}

// ParseCmd is the "parse" subcommand.
type ParseCmd struct {
	URL          string   `arg:"" help:"Page URL"`
	Kind         string   `default:"marketplace" enum:"marketplace,configuration" help:"Page kind (marketplace or configuration)"`
	Fields       []string `short:"F" help:"Keep only these canonical keys (repeatable)"`
	FollowConfig bool     `short:"c" help:"Also parse the listing's configuration page"`
	Images       bool     `short:"i" help:"Download gallery images"`
	Out          string   `short:"o" help:"Write the report to a file instead of stdout"`
	Timeout      int      `default:"120" help:"Overall timeout in seconds"`
	Lang         string   `default:"English" help:"Translation target language"`
	NoStore      bool     `help:"Skip persisting the record"`
}

// HistoryCmd is the "history" subcommand.
type HistoryCmd struct {
	Kind  string `enum:",marketplace,configuration" default:"" help:"Filter by record kind"`
	Limit int    `short:"n" default:"20" help:"Maximum records to list"`
}

// ShowCmd is the "show" subcommand.
type ShowCmd struct {
	ID string `arg:"" help:"Record ID"`
}

// DeleteCmd is the "delete" subcommand.
type DeleteCmd struct {
	ID    string `arg:"" help:"Record ID"`
	Force bool   `help:"Confirm deletion"`
}

// DictCmd is the "dict" subcommand.
type DictCmd struct {
	Keys bool `help:"Print canonical keys only"`
}
