package outline

import "strings"

// Normalize makes the region a well-formed compound-statement body. It
// separates an included function header, absorbs closing braces the region
// is missing and, outside whole-file mode, closes the function remainder.
func (c *ExtractionContext) Normalize() error {
	if err := c.SeparateHeader(); err != nil {
		return err
	}
	if err := c.BalanceRegion(); err != nil {
		return err
	}
	if !c.WholeFile {
		c.BalanceRemainder()
	}
	return nil
}

// SeparateHeader moves the function header out of the region when the
// region starts on the function's first line. Everything up to and
// including the first line with an opening brace is handed back to the
// remainder; nothing may follow that brace on its line.
func (c *ExtractionContext) SeparateHeader() error {
	if c.Region.Start != c.Function.Start {
		return nil
	}

	braceLine := 0
	for n := c.Region.Start; n <= c.Region.End; n++ {
		text, _ := c.RegionLines.Get(n)
		stripped := StripLiterals(text)
		idx := strings.IndexByte(stripped, '{')
		if idx < 0 {
			continue
		}
		if strings.TrimSpace(stripped[idx+1:]) != "" {
			return structuralError(n, "malformed header line: content follows the opening brace: %q", text)
		}
		braceLine = n
		break
	}
	if braceLine == 0 {
		return structuralError(c.Region.Start, "malformed header line: no opening brace in region %s", c.Region)
	}

	for n := c.Region.Start; n <= braceLine; n++ {
		c.RegionLines.MoveTo(c.Remainder, n)
	}
	c.logger.Debug("separated function header", "from", c.Region.Start, "to", braceLine)

	c.Region.Start = braceLine + 1
	if c.Region.Start >= c.Region.End {
		return structuralError(c.Region.Start, "empty region after separating function header")
	}
	return nil
}

// BalanceRegion absorbs lone closing braces that follow the region until
// its opening and closing brace counts match. Blank lines between are
// absorbed along with them. Any other content means the region does not
// end on a statement boundary. The final counts are recorded on the region.
func (c *ExtractionContext) BalanceRegion() error {
	opening, closing := CountBraces(c.RegionLines.Texts())

	for closing < opening {
		found := false
		for n := c.Region.End + 1; n <= c.Function.End; n++ {
			text, ok := c.Remainder.Get(n)
			if !ok {
				continue
			}
			trimmed := strings.Trim(text, " \t\r")
			if trimmed == "" {
				continue
			}
			if trimmed != "}" {
				return structuralError(n, "could not find closing brace: expected a lone '}' but found %q", trimmed)
			}
			for m := c.Region.End + 1; m <= n; m++ {
				c.Remainder.MoveTo(c.RegionLines, m)
			}
			c.Region.End = n
			closing++
			found = true
			c.logger.Debug("absorbed closing brace into region", "line", n)
			break
		}
		if !found {
			return structuralError(c.Function.End, "could not find closing brace: reached end of function with %d unclosed", opening-closing)
		}
	}

	c.Region.OpeningBraces = opening
	c.Region.ClosingBraces = closing
	return nil
}

// BalanceRemainder appends synthetic closing braces to the end of the
// function when the remainder opens more braces than it closes.
func (c *ExtractionContext) BalanceRemainder() {
	opening, closing := CountBraces(c.Remainder.Texts())
	for closing < opening {
		c.Function.End++
		c.Remainder.Set(c.Function.End, "}")
		closing++
		c.logger.Debug("appended closing brace to function", "line", c.Function.End)
	}
	c.Function.OpeningBraces = opening
	c.Function.ClosingBraces = closing
}
