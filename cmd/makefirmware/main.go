// Makefirmware converts an Intel HEX file into the raw binary image the
// PETdisk bootloader flashes into program memory.
//
// Usage:
//
//	makefirmware [flags] <input_hexfile> <output_binfile> <programsize>
//
// programsize is the exact length of the output in bytes, decimal or 0x hex.
// The word "device" takes the size of the application area of the target
// named by --device instead.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/golang/glog"
	"github.com/spf13/cobra"

	"github.com/q0jt/go-hexbin/hexbin"
	"github.com/q0jt/go-hexbin/hexbin/config"
	"github.com/q0jt/go-hexbin/hexbin/config/device"
)

const deviceSize = "device"

type options struct {
	fill    uint8
	overlap string
	strict  bool
	verify  bool
	summary string
	device  string
	layouts string
}

func main() {
	os.Exit(execute(os.Args[1:], os.Stdout, os.Stderr))
}

func execute(args []string, stdout, stderr io.Writer) int {
	defer glog.Flush()

	cmd := newRootCmd(stdout)
	cmd.SetArgs(args)
	cmd.SetErr(stderr)
	err := cmd.ExecuteContext(context.Background())
	if err == nil {
		return 0
	}
	var uerr *hexbin.UsageError
	if errors.As(err, &uerr) {
		fmt.Fprintf(stderr, "%v\n%s", err, cmd.UsageString())
		return 2
	}
	glog.Errorf("makefirmware: %v", err)
	fmt.Fprintf(stderr, "makefirmware: %v\n", err)
	return 1
}

func newRootCmd(stdout io.Writer) *cobra.Command {
	var o options
	cmd := &cobra.Command{
		Use:   "makefirmware <input_hexfile> <output_binfile> <programsize>",
		Short: "Convert an Intel HEX file into a fixed-size raw firmware image",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) < 3 {
				return &hexbin.UsageError{Message: "need <input_hexfile> <output_binfile> <programsize>"}
			}
			return nil
		},
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), o, args, stdout)
		},
	}
	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return &hexbin.UsageError{Message: "bad flag", Err: err}
	})

	f := cmd.Flags()
	f.Uint8Var(&o.fill, "fill", hexbin.FillByte, "`byte` used to pad gaps and trailing space")
	f.StringVar(&o.overlap, "overlap", hexbin.OverlapReject.String(),
		"records below the write cursor: reject or append")
	f.BoolVar(&o.strict, "strict", false, "verify checksums and require an end of file record")
	f.BoolVar(&o.verify, "verify", false, "read the image back and check its digest")
	f.StringVar(&o.summary, "summary", "", "write a conversion summary to `path` (.json for JSON)")
	f.StringVar(&o.device, "device", "", "target `name` to check the program size against")
	f.StringVar(&o.layouts, "layouts", hexbin.DefaultLayoutsPath, "Pkl device table")

	// glog registers its flags on the standard flag set.
	cmd.PersistentFlags().AddGoFlagSet(flag.CommandLine)
	return cmd
}

func run(ctx context.Context, o options, args []string, stdout io.Writer) error {
	in, out := args[0], args[1]
	if len(args) > 3 {
		glog.V(1).Infof("ignoring %d extra arguments", len(args)-3)
	}
	policy, err := hexbin.ParseOverlapPolicy(o.overlap)
	if err != nil {
		return &hexbin.UsageError{Message: "--overlap", Err: err}
	}
	size, err := programSize(ctx, o, args[2])
	if err != nil {
		return err
	}

	sum, err := hexbin.ConvertFile(in, out, size,
		hexbin.WithFillByte(o.fill),
		hexbin.WithOverlapPolicy(policy),
		hexbin.WithStrict(o.strict),
		hexbin.WithProgress(func(p hexbin.Progress) {
			glog.V(3).Infof("record %d: %d/%d bytes", p.Record, p.Written, p.Total)
		}),
	)
	if err != nil {
		return err
	}
	glog.Infof("%s: %v", out, sum)
	fmt.Fprintf(stdout, "%s: %v\n", out, sum)

	if o.verify {
		if err := sum.VerifyFile(out); err != nil {
			return err
		}
	}
	if o.summary != "" {
		if err := sum.WriteSummary(o.summary); err != nil {
			return &hexbin.OutputWriteError{Path: o.summary, Err: err}
		}
	}
	return nil
}

func programSize(ctx context.Context, o options, arg string) (int, error) {
	if arg == deviceSize {
		if o.device == "" {
			return 0, &hexbin.UsageError{Message: `programsize "device" needs --device`}
		}
		dev, layout, err := lookupLayout(ctx, o)
		if err != nil {
			return 0, err
		}
		size := hexbin.ProgramSizeFor(layout)
		if err := checkLayout(o, dev, layout, size); err != nil {
			return 0, err
		}
		return size, nil
	}

	n, err := parseSize(arg)
	if err != nil {
		return 0, &hexbin.UsageError{Message: fmt.Sprintf("programsize %q", arg), Err: err}
	}
	if n <= 0 {
		return 0, &hexbin.UsageError{Message: fmt.Sprintf("programsize %q", arg), Err: hexbin.ErrInvalidProgramSize}
	}
	if o.device != "" {
		dev, layout, err := lookupLayout(ctx, o)
		if err != nil {
			return 0, err
		}
		if err := hexbin.CheckProgramSize(dev, layout, int(n)); err != nil {
			return 0, &hexbin.UsageError{Message: "programsize", Err: err}
		}
		if err := checkLayout(o, dev, layout, int(n)); err != nil {
			return 0, err
		}
	}
	return int(n), nil
}

// parseSize reads a decimal size, or hex with an explicit 0x prefix. A
// leading zero does not switch to octal.
func parseSize(arg string) (int64, error) {
	if digits, ok := strings.CutPrefix(strings.ToLower(arg), "0x"); ok {
		return strconv.ParseInt(digits, 16, 64)
	}
	return strconv.ParseInt(arg, 10, 64)
}

// checkLayout refuses device images the 16-bit record pass cannot address
// and warns about a trailing partial flash page.
func checkLayout(o options, dev device.Device, layout *config.MemoryLayout, size int) error {
	if size > hexbin.AddressSpace && !o.strict {
		return &hexbin.UsageError{
			Message: fmt.Sprintf("%s images above 0x%X bytes need --strict", dev, hexbin.AddressSpace),
		}
	}
	if !layout.PageAligned(size) {
		glog.Warningf("program size %d is not a whole number of %d byte pages on %s",
			size, layout.PageSize, dev)
	}
	return nil
}

func lookupLayout(ctx context.Context, o options) (device.Device, *config.MemoryLayout, error) {
	dev, layout, err := hexbin.LookupLayout(ctx, o.layouts, o.device)
	if errors.Is(err, hexbin.ErrUnknownDevice) {
		return "", nil, &hexbin.UsageError{Message: "--device", Err: err}
	}
	return dev, layout, err
}
