package passes

import (
	"strings"

	"github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/css"
)

// minifyCSS tokenizes src with tdewolff/parse/v2/css (pulled in from the
// retrieval pack via the cogentcore-core manifest) and re-renders it with
// whitespace and comments stripped, inserting the single space a run of
// word-like tokens needs to stay distinct (so "solid black" doesn't become
// "solidblack") and dropping the semicolon immediately before a closing
// brace or end of input.
func minifyCSS(src string) string {
	l := css.NewLexer(parse.NewInputString(src))
	var out strings.Builder
	prevWordlike := false
	pendingSemi := false

	flushSemi := func() {
		if pendingSemi {
			out.WriteString(";")
			pendingSemi = false
		}
	}

	for {
		tt, data := l.Next()
		if tt == css.ErrorToken {
			break
		}
		switch tt {
		case css.WhitespaceToken, css.CommentToken:
			continue
		case css.SemicolonToken:
			flushSemi()
			pendingSemi = true
			prevWordlike = false
			continue
		case css.RightBraceToken:
			pendingSemi = false
			out.WriteString("}")
			prevWordlike = false
			continue
		}
		flushSemi()
		if wordlikeToken(tt) && prevWordlike {
			out.WriteString(" ")
		}
		out.Write(data)
		prevWordlike = wordlikeToken(tt)
	}
	return out.String()
}

func wordlikeToken(tt css.TokenType) bool {
	switch tt {
	case css.IdentToken, css.NumberToken, css.DimensionToken, css.PercentageToken,
		css.StringToken, css.HashToken, css.AtKeywordToken:
		return true
	default:
		return false
	}
}
