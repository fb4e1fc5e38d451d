package cmd

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/fractiz/internal/fraction"
)

var fracCmd = &cobra.Command{
	Use:   "frac",
	Short: "Fraction calculator",
	Long: `Work with fractions directly. Fractions are written "n/d"; mixed numbers
as "w n/d" (quoted). Output uses the FRACTIZ_NOTATION style; --json prints
the raw result instead.`,
}

func init() {
	fracCmd.PersistentFlags().Bool("json", false, "Print the result as JSON")

	fracDecimalCmd.Flags().Int("places", 4, "Decimal places")
	fracEquivalentsCmd.Flags().Int("count", 5, "How many equivalents to list")

	fracCmd.AddCommand(fracSimplifyCmd, fracMixedCmd, fracImproperCmd, fracClassifyCmd,
		fracDecimalCmd, fracCompareCmd, fracCommonCmd, fracEquivalentsCmd, fracCalcCmd)
}

// emit prints v as JSON when --json is set, and text otherwise.
func emit(cmd *cobra.Command, v any, text string) error {
	out := cmd.OutOrStdout()
	if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	}
	_, err := fmt.Fprintln(out, text)
	return err
}

func styled(f fraction.Fraction) string {
	return fraction.FormatStyle(f.Numerator, f.Denominator, cfg.Style())
}

var fracSimplifyCmd = &cobra.Command{
	Use:   "simplify <n/d>",
	Short: "Reduce a fraction to lowest terms",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		f, err := fraction.Parse(args[0])
		if err != nil {
			return err
		}
		s, err := fraction.Simplify(f.Numerator, f.Denominator)
		if err != nil {
			return err
		}
		text := fmt.Sprintf("%s ya está simplificada", styled(f))
		if !s.AlreadySimplified() {
			text = fmt.Sprintf("%s = %s (÷%d)", styled(f), styled(s.Fraction()), s.Factor)
		}
		return emit(cmd, s, text)
	},
}

var fracMixedCmd = &cobra.Command{
	Use:   "mixed <n/d>",
	Short: "Convert a fraction to a mixed number",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		f, err := fraction.Parse(args[0])
		if err != nil {
			return err
		}
		m, err := fraction.ToMixedNumber(f.Numerator, f.Denominator)
		if err != nil {
			return err
		}
		text := fmt.Sprintf("%s es propia; no tiene parte entera", styled(f))
		if m.IsMixed {
			text = fmt.Sprintf("%s = %s", styled(f),
				fraction.FormatMixedStyle(m.Whole, m.Numerator, m.Denominator, cfg.Style()))
		}
		return emit(cmd, m, text)
	},
}

var fracImproperCmd = &cobra.Command{
	Use:   "improper <w n/d>",
	Short: "Convert a mixed number to an improper fraction",
	Args:  cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		mn, err := fraction.ParseMixed(strings.Join(args, " "))
		if err != nil {
			return err
		}
		f, err := fraction.ToImproper(mn.Whole, mn.Fraction.Numerator, mn.Fraction.Denominator)
		if err != nil {
			return err
		}
		text := fmt.Sprintf("%s = %s",
			fraction.FormatMixedStyle(mn.Whole, mn.Fraction.Numerator, mn.Fraction.Denominator, cfg.Style()), styled(f))
		return emit(cmd, f, text)
	},
}

var fracClassifyCmd = &cobra.Command{
	Use:   "classify <n/d>",
	Short: "Classify a fraction as proper, improper, unit or apparent",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		f, err := fraction.Parse(args[0])
		if err != nil {
			return err
		}
		t, err := fraction.Classify(f.Numerator, f.Denominator)
		if err != nil {
			return err
		}
		return emit(cmd, map[string]string{"type": string(t)},
			fmt.Sprintf("%s: %s", styled(f), t.Description()))
	},
}

var fracDecimalCmd = &cobra.Command{
	Use:   "decimal <n/d>",
	Short: "Show the decimal expansion of a fraction",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		places, _ := cmd.Flags().GetInt("places")
		f, err := fraction.Parse(args[0])
		if err != nil {
			return err
		}
		d, err := fraction.ToDecimal(f.Numerator, f.Denominator, places)
		if err != nil {
			return err
		}
		return emit(cmd, d, decimalText(f, d))
	},
}

func decimalText(f fraction.Fraction, d fraction.Decimal) string {
	switch {
	case d.Finite:
		return fmt.Sprintf("%s = %s (decimal exacto)", styled(f), d.Text)
	case d.Period != "":
		return fmt.Sprintf("%s ≈ %s (periódico, periodo %s)", styled(f), d.Text, d.Period)
	default:
		return fmt.Sprintf("%s ≈ %s (periódico)", styled(f), d.Text)
	}
}

var fracCompareCmd = &cobra.Command{
	Use:   "compare <a> <b>",
	Short: "Compare two fractions",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := fraction.Parse(args[0])
		if err != nil {
			return err
		}
		b, err := fraction.Parse(args[1])
		if err != nil {
			return err
		}
		c, err := fraction.Compare(a, b)
		if err != nil {
			return err
		}
		sym := map[int]string{-1: "<", 0: "=", 1: ">"}[c]
		return emit(cmd, map[string]int{"result": c}, fmt.Sprintf("%s %s %s", styled(a), sym, styled(b)))
	},
}

var fracCommonCmd = &cobra.Command{
	Use:   "common <a> <b> [more...]",
	Short: "Rewrite fractions over their least common denominator",
	Args:  cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		fs := make([]fraction.Fraction, len(args))
		for i, a := range args {
			f, err := fraction.Parse(a)
			if err != nil {
				return err
			}
			fs[i] = f
		}
		scaled, err := fraction.CommonDenominator(fs)
		if err != nil {
			return err
		}
		parts := make([]string, len(scaled))
		for i, s := range scaled {
			parts[i] = fmt.Sprintf("%s = %s (×%d)", styled(fs[i]),
				fraction.FormatStyle(s.Numerator, s.Denominator, cfg.Style()), s.Factor)
		}
		return emit(cmd, scaled, strings.Join(parts, "\n"))
	},
}

var fracEquivalentsCmd = &cobra.Command{
	Use:   "equivalents <n/d>",
	Short: "List fractions equivalent to n/d",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		count, _ := cmd.Flags().GetInt("count")
		f, err := fraction.Parse(args[0])
		if err != nil {
			return err
		}
		eqs, err := fraction.Equivalents(f.Numerator, f.Denominator, count)
		if err != nil {
			return err
		}
		parts := make([]string, len(eqs))
		for i, e := range eqs {
			parts[i] = styled(e.Fraction())
		}
		return emit(cmd, eqs, fmt.Sprintf("%s = %s", styled(f), strings.Join(parts, " = ")))
	},
}

var fracCalcCmd = &cobra.Command{
	Use:   "calc <a> <op> <b>",
	Short: "Add, subtract, multiply or divide two fractions",
	Long:  `Operators: + - x * × / : ÷. The result is reduced to lowest terms.`,
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := fraction.Parse(args[0])
		if err != nil {
			return err
		}
		b, err := fraction.Parse(args[2])
		if err != nil {
			return err
		}
		r, err := calc(a, args[1], b)
		if err != nil {
			return err
		}
		return emit(cmd, r, calcText(a, args[1], b, r))
	},
}

// calc applies the operator named by op.
func calc(a fraction.Fraction, op string, b fraction.Fraction) (fraction.Fraction, error) {
	switch op {
	case "+":
		return fraction.Add(a, b)
	case "-":
		return fraction.Subtract(a, b)
	case "x", "*", "×":
		return fraction.Multiply(a, b)
	case "/", ":", "÷":
		return fraction.Divide(a, b)
	default:
		return fraction.Fraction{}, fmt.Errorf("unknown operator %q", op)
	}
}

func calcText(a fraction.Fraction, op string, b, r fraction.Fraction) string {
	text := fmt.Sprintf("%s %s %s = %s", styled(a), op, styled(b), fraction.FormatResult(r))
	if r.Numerator > r.Denominator && r.Denominator > 1 {
		if m, err := fraction.ToMixedNumber(r.Numerator, r.Denominator); err == nil {
			text += " = " + m.String()
		}
	}
	return text
}
