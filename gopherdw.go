// This file is part of GopherDW.
//
// GopherDW is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// GopherDW is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with GopherDW.  If not, see <https://www.gnu.org/licenses/>.

package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"strings"

	"github.com/jetsetilly/gopherdw/curated"
	"github.com/jetsetilly/gopherdw/debugger"
	"github.com/jetsetilly/gopherdw/debugger/script"
	"github.com/jetsetilly/gopherdw/debugger/terminal"
	"github.com/jetsetilly/gopherdw/debugger/terminal/colorterm"
	"github.com/jetsetilly/gopherdw/debugger/terminal/plainterm"
	"github.com/jetsetilly/gopherdw/disassembly"
	"github.com/jetsetilly/gopherdw/hardware/device"
	"github.com/jetsetilly/gopherdw/isp"
	"github.com/jetsetilly/gopherdw/isp/spidev"
	"github.com/jetsetilly/gopherdw/logger"
	"github.com/jetsetilly/gopherdw/modalflag"
	"github.com/jetsetilly/gopherdw/paths"
	"github.com/jetsetilly/gopherdw/prefs"
	"github.com/jetsetilly/gopherdw/statsview"
	"github.com/jetsetilly/gopherdw/transport"
	"github.com/jetsetilly/gopherdw/transport/serial"
	"github.com/jetsetilly/gopherdw/transport/simulator"
	"github.com/jetsetilly/gopherdw/version"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)

	err := launch(ctx, os.Args[1:], os.Stdin, os.Stdout)
	stop()

	if err != nil {
		fmt.Fprintf(os.Stderr, "* error: %v\n", err)
		os.Exit(10)
	}
}

// launch is the body of main(). the input and output are the standard input
// and output except when testing
func launch(ctx context.Context, args []string, input io.Reader, output io.Writer) error {
	md := &modalflag.Modes{Output: output}
	md.NewArgs(args)
	md.AddSubModes("DEBUG", "ISP", "DISASM", "VERSION")

	p, err := md.Parse()
	switch p {
	case modalflag.ParseHelp:
		return nil
	case modalflag.ParseError:
		return err
	}

	switch md.Mode() {
	case "DEBUG":
		err = debug(ctx, md, input, output)
	case "ISP":
		err = program(md, output)
	case "DISASM":
		err = disasm(md, output)
	case "VERSION":
		err = showVersion(md, output)
	}

	return err
}

// target flags are shared by the DEBUG and ISP modes
type target struct {
	sim  *string
	port *string
	spi  *string
}

func addTargetFlags(md *modalflag.Modes) target {
	return target{
		sim:  md.AddString("sim", "", "simulate a part with the signature (eg. 930B)"),
		port: md.AddString("port", "", "serial port connected to the reset pin (overrides serial.port)"),
		spi:  md.AddString("spi", "", "spidev device of the ISP programmer"),
	}
}

// open the link to the target and the programmer. the programmer is nil if
// the part is not simulated and there is no spidev device. the returned
// function closes the link
func (tgt target) open(prefsFile string) (transport.Link, *isp.Programmer, func(), error) {
	if *tgt.sim != "" {
		sig, err := device.ParseSignature(*tgt.sim)
		if err != nil {
			return nil, nil, nil, err
		}
		profile, ok := device.Lookup(sig)
		if !ok {
			return nil, nil, nil, fmt.Errorf("can not simulate unknown part %s", sig)
		}
		sim := simulator.NewTarget(profile)
		logger.Logf(logger.Allow, "gopherdw", "using %s", sim)
		return sim, isp.NewProgrammer(sim.SPI(), sim), func() {}, nil
	}

	sp, err := serial.NewPreferences(prefsFile)
	if err != nil {
		return nil, nil, nil, err
	}
	if *tgt.port != "" {
		if err := sp.Port.Set(*tgt.port); err != nil {
			return nil, nil, nil, err
		}
	}

	link, err := serial.Open(sp)
	if err != nil {
		return nil, nil, nil, err
	}
	closer := func() {
		if err := link.Close(); err != nil {
			logger.Log(logger.Allow, "gopherdw", err)
		}
	}

	var prog *isp.Programmer
	if *tgt.spi != "" {
		prog = isp.NewProgrammer(spidev.NewDevice(*tgt.spi, spidev.DefaultSpeed), link)
	}

	return link, prog, closer, nil
}

// echo the log to the output if requested
func setupLog(echo bool, color bool, output io.Writer) {
	if !echo {
		return
	}
	if color {
		logger.SetEcho(logger.NewColorizer(output))
	} else {
		logger.SetEcho(output)
	}
}

// the script loaded by default in DEBUG mode
const initScriptFile = "debuggerInit"

func debug(ctx context.Context, md *modalflag.Modes, input io.Reader, output io.Writer) error {
	md.NewMode()

	tgt := addTargetFlags(md)
	color := md.AddBool("color", false, "use the color terminal (overrides terminal.color)")
	cmdlinePrefs := md.AddString("prefs", "", "preferences for this session (eg. 'debugwire.rate::62500; serial.echo::false')")
	echoLog := md.AddBool("log", false, "echo the log to the terminal")
	saveLog := md.AddBool("savelog", false, "save the log when the session ends")
	stats := md.AddBool("statsview", false, "run the statistics server (if available)")
	initScript := md.AddString("script", "", "commands to run before prompting (default: debuggerInit in the resource directory)")
	record := md.AddString("record", "", "record the session to the named file")

	p, err := md.Parse()
	switch p {
	case modalflag.ParseHelp:
		return nil
	case modalflag.ParseError:
		return err
	}
	if len(md.RemainingArgs()) > 0 {
		return fmt.Errorf("too many arguments for %s mode", md)
	}

	if *stats {
		if statsview.Available() {
			statsview.Launch(output)
		} else {
			logger.Log(logger.Allow, "gopherdw", "statsview not available in this build")
		}
	}

	prefsFile, err := paths.ResourcePath("", prefs.DefaultPrefsFile)
	if err != nil {
		return err
	}

	if *cmdlinePrefs != "" {
		prefs.PushOverrides(*cmdlinePrefs)
		defer func() {
			if unused := prefs.PopOverrides(); unused != "" {
				logger.Logf(logger.Allow, "prefs", "unused overrides: %s", unused)
			}
		}()
	}

	// the color terminal can be requested on the command line or in the
	// preferences file
	useColor, err := colorPreference(prefsFile)
	if err != nil {
		return err
	}
	if *color {
		useColor = true
	}

	setupLog(*echoLog, useColor, output)

	dbgPrefs, err := debugger.NewPreferences(prefsFile)
	if err != nil {
		return err
	}

	link, prog, closer, err := tgt.open(prefsFile)
	if err != nil {
		return err
	}
	defer closer()

	var term terminal.Terminal
	if useColor {
		term = colorterm.NewColorTerminal(input, output)
	} else {
		term = plainterm.NewPlainTerminal(input, output)
	}

	dbg, err := debugger.NewDebugger(term, link, prog, dbgPrefs)
	if err != nil {
		return err
	}

	// the init script is optional unless it is named on the command line
	if *initScript != "" {
		if err := dbg.LoadScript(*initScript); err != nil {
			return err
		}
	} else {
		fn, err := paths.ResourcePath("", initScriptFile)
		if err != nil {
			return err
		}
		if err := dbg.LoadScript(fn); err != nil && !curated.Is(err, script.NoScript) {
			return err
		}
	}

	if *record != "" {
		if err := dbg.Record(*record); err != nil {
			return err
		}
	}

	// changes to the preferences file are applied by the debugger between
	// commands
	err = dbg.Start(ctx)

	if *saveLog {
		name := ""
		if dbg.Profile() != nil {
			name = dbg.Profile().Name
		}
		if serr := writeLog(name); serr != nil {
			fmt.Fprintf(output, "* error: %v\n", serr)
		}
	}

	return err
}

// the terminal.color preference
func colorPreference(prefsFile string) (bool, error) {
	dsk, err := prefs.NewDisk(prefsFile)
	if err != nil {
		return false, err
	}

	var color prefs.Bool
	if err := dsk.Add("terminal.color", &color); err != nil {
		return false, err
	}
	if err := dsk.Load(); err != nil && !curated.Is(err, prefs.NoPrefsFile) {
		return false, err
	}

	return color.Get().(bool), nil
}

// write the log to a new file in the logs directory
func writeLog(part string) error {
	pth, err := paths.ResourcePath("logs", paths.UniqueFilename("log", part))
	if err != nil {
		return err
	}

	f, err := os.Create(pth)
	if err != nil {
		return err
	}
	defer f.Close()

	logger.Write(f)
	return nil
}

// ISP mode identifies the part and optionally changes the debugWIRE fuses
// without starting the debugger
func program(md *modalflag.Modes, output io.Writer) error {
	md.NewMode()

	tgt := addTargetFlags(md)
	dwen := md.AddString("dwen", "", "program (on) or unprogram (off) the DWEN fuse")
	ckdiv8 := md.AddString("ckdiv8", "", "program (on) or unprogram (off) the CKDIV8 fuse")
	echoLog := md.AddBool("log", false, "echo the log")

	p, err := md.Parse()
	switch p {
	case modalflag.ParseHelp:
		return nil
	case modalflag.ParseError:
		return err
	}

	setupLog(*echoLog, false, output)

	if *tgt.sim == "" && *tgt.spi == "" {
		return fmt.Errorf("ISP mode requires a programmer (-spi) or a simulated part (-sim)")
	}

	prefsFile, err := paths.ResourcePath("", prefs.DefaultPrefsFile)
	if err != nil {
		return err
	}

	_, prog, closer, err := tgt.open(prefsFile)
	if err != nil {
		return err
	}
	defer closer()

	profile, sig, err := prog.Identify()
	if err != nil {
		return err
	}
	fmt.Fprintf(output, "SIG:    %02X %02X = %s\n", sig[0], sig[1], profile.Name)

	change := func(name string, setting string, f func(device.Profile, bool) error) error {
		var enable bool
		switch strings.ToLower(setting) {
		case "":
			return nil
		case "on":
			enable = true
		case "off":
			enable = false
		default:
			return fmt.Errorf("%s must be on or off", name)
		}
		err := f(profile, enable)
		if curated.Is(err, isp.Unchanged) {
			fmt.Fprintf(output, "%s Fuse Already %s\n", name, setting)
			return nil
		}
		if err != nil {
			return err
		}
		fmt.Fprintf(output, "%s Fuse changed to %s\n", name, setting)
		return nil
	}

	if err := change("DWEN", *dwen, prog.SetDWEN); err != nil {
		return err
	}
	if err := change("CKDIV8", *ckdiv8, prog.SetCKDIV8); err != nil {
		return err
	}

	f, err := prog.Fuses()
	if err != nil {
		return err
	}
	fmt.Fprintf(output, "Low: %02X, High: %02X, Extd: %02X\n", f.Low, f.High, f.Ext)

	return prog.Leave()
}

// DISASM mode decodes the opcodes given on the command line
func disasm(md *modalflag.Modes, output io.Writer) error {
	md.NewMode()
	origin := md.AddString("origin", "0000", "byte address of the first opcode (hex)")

	p, err := md.Parse()
	switch p {
	case modalflag.ParseHelp:
		return nil
	case modalflag.ParseError:
		return err
	}

	addr, err := strconv.ParseUint(*origin, 16, 16)
	if err != nil {
		return fmt.Errorf("origin: %w", err)
	}

	args := md.RemainingArgs()
	if len(args) == 0 {
		return fmt.Errorf("no opcodes to disassemble")
	}

	ops := make([]uint16, 0, len(args))
	for _, a := range args {
		v, err := strconv.ParseUint(a, 16, 16)
		if err != nil {
			return fmt.Errorf("opcode: %w", err)
		}
		ops = append(ops, uint16(v))
	}

	for i := 0; i < len(ops); i++ {
		var next uint16
		if i+1 < len(ops) {
			next = ops[i+1]
		}
		e := disassembly.Decode(uint16(addr), ops[i], next)
		fmt.Fprintln(output, e.Format(""))
		if e.Words == 2 {
			i++
			addr += 2
		}
		addr += 2
	}

	return nil
}

func showVersion(md *modalflag.Modes, output io.Writer) error {
	md.NewMode()
	revision := md.AddBool("revision", false, "display revision information from version control")

	p, err := md.Parse()
	switch p {
	case modalflag.ParseHelp:
		return nil
	case modalflag.ParseError:
		return err
	}

	v, r, _ := version.Version()
	fmt.Fprintf(output, "%s %s (%s)\n", version.ApplicationName, v, version.Number())
	if *revision {
		fmt.Fprintln(output, r)
	}

	return nil
}
