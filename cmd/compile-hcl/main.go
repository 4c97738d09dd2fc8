// Command compile-hcl loads a patch document written in the HCL-like
// grammar (package hcl), compiles it through the nine-pass compiler, and
// reports pass/fail -- grounded on the teacher's verify/cmd/verify-*
// family of small CLI entry points that load a program and print a
// structural report, rebuilt here with github.com/spf13/cobra instead of
// a bare main() since this tool takes real flags (--json, --verbose).
package main

import (
	"fmt"
	"os"

	"github.com/flowframe/engine/compile"
	"github.com/flowframe/engine/hcl"
	"github.com/flowframe/engine/registry"

	"encoding/json"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

var (
	flagJSON    bool
	flagVerbose bool
)

func main() {
	root := &cobra.Command{
		Use:           "compile-hcl <file>",
		Short:         "Compile a patch document and report success or failure",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          run,
	}
	root.Flags().BoolVar(&flagJSON, "json", false, "emit a stable JSON report instead of text")
	root.Flags().BoolVar(&flagVerbose, "verbose", false, "print slot and schedule tables on success")

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

// report is the stable JSON schema described in spec §6: present fields
// depend on which stage (parse vs compile) failed, if any.
type report struct {
	File          string   `json:"file"`
	Status        string   `json:"status"`
	Blocks        int      `json:"blocks,omitempty"`
	ScheduleSteps int      `json:"scheduleSteps,omitempty"`
	Slots         int      `json:"slots,omitempty"`
	ParseErrors   []string `json:"parseErrors,omitempty"`
	CompileErrors []string `json:"compileErrors,omitempty"`
}

func run(cmd *cobra.Command, args []string) error {
	path := args[0]
	data, err := os.ReadFile(path)
	if err != nil {
		return emitFailure(path, nil, []string{err.Error()})
	}

	doc, parseErrs := hcl.Parse(string(data))
	if len(parseErrs) > 0 {
		msgs := make([]string, len(parseErrs))
		for i, e := range parseErrs {
			msgs[i] = e.Error()
		}
		return emitFailure(path, msgs, nil)
	}

	patch := hcl.ToPatch(doc)

	reg := registry.New()
	adapters := registry.NewAdapterCatalog()
	registry.RegisterBuiltins(reg, adapters)

	result := compile.Compile(patch, reg, adapters)
	if !result.OK {
		msgs := make([]string, 0, len(result.Diagnostics))
		for _, d := range result.Diagnostics {
			msgs = append(msgs, fmt.Sprintf("%s: %s", d.Code, d.Message))
		}
		return emitCompileFailure(path, msgs)
	}

	return emitSuccess(path, patch, result)
}

func emitFailure(path string, parseErrs, ioErrs []string) error {
	if flagJSON {
		r := report{File: path, Status: "error", ParseErrors: parseErrs, CompileErrors: ioErrs}
		return printJSON(r)
	}
	fmt.Printf("FAIL %s\n", path)
	for _, m := range parseErrs {
		fmt.Println(" ", m)
	}
	for _, m := range ioErrs {
		fmt.Println(" ", m)
	}
	return errFail
}

func emitCompileFailure(path string, msgs []string) error {
	if flagJSON {
		r := report{File: path, Status: "error", CompileErrors: msgs}
		return printJSON(r)
	}
	fmt.Printf("FAIL %s\n", path)
	for _, m := range msgs {
		fmt.Println(" ", m)
	}
	return errFail
}

func emitSuccess(path string, patch compile.Patch, result compile.CompiledProgram) error {
	blocks := len(patch.Blocks)
	steps := len(result.Program.Schedule)
	slots := len(result.Program.Slots)

	if flagJSON {
		r := report{File: path, Status: "ok", Blocks: blocks, ScheduleSteps: steps, Slots: slots}
		return printJSON(r)
	}

	fmt.Printf("OK %s — compiled (%d blocks, %d steps, %d slots)\n", path, blocks, steps, slots)
	if flagVerbose {
		printVerbose(result)
	}
	return nil
}

func printVerbose(result compile.CompiledProgram) {
	slotTable := table.NewWriter()
	slotTable.SetTitle("Slots")
	slotTable.AppendHeader(table.Row{"ID", "Type", "Storage"})
	for _, s := range result.Program.Slots {
		slotTable.AppendRow(table.Row{s.ID, s.Type.String(), s.Storage})
	}
	fmt.Println(slotTable.Render())
	fmt.Println()

	stepTable := table.NewWriter()
	stepTable.SetTitle("Schedule")
	stepTable.AppendHeader(table.Row{"#", "Kind"})
	for i, s := range result.Program.Schedule {
		stepTable.AppendRow(table.Row{i, s.Kind})
	}
	fmt.Println(stepTable.Render())
}

func printJSON(r report) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(r); err != nil {
		return err
	}
	if r.Status != "ok" {
		return errFail
	}
	return nil
}

// errFail is a sentinel returned to make cobra exit 1 without printing
// its own "Error: ..." line (the root command sets SilenceErrors in main).
var errFail = fmt.Errorf("compile-hcl: failed")

func init() {
	cobra.EnableCommandSorting = false
}
