package checksum

// CommentLines reports, for each line of content, whether the line holds
// comment text and no code. Block comments are followed across lines, so the
// body of a /* ... */ block is comment even without a leading "*". Blank
// lines report false. The result has one entry per "\n" plus one.
func CommentLines(content []byte) []bool {
	lines := make([]bool, 0, 64)
	state := stNormal
	var quote byte
	hasCode, hasComment := false, false

	endLine := func() {
		lines = append(lines, hasComment && !hasCode)
		hasCode, hasComment = false, false
	}

	for i := 0; i < len(content); i++ {
		ch := content[i]
		var next byte
		if i+1 < len(content) {
			next = content[i+1]
		}

		if ch == '\n' {
			switch {
			case state == stLineComment:
				state = stNormal
			case state == stString && quote != '`':
				state = stNormal
			}
			endLine()
			continue
		}

		switch state {
		case stNormal:
			switch {
			case ch == '/' && next == '/':
				state = stLineComment
				hasComment = true
				i++
			case ch == '/' && next == '*':
				state = stBlockComment
				hasComment = true
				i++
			case ch == '\'' || ch == '"' || ch == '`':
				state = stString
				quote = ch
				hasCode = true
			case !isBlank(ch):
				hasCode = true
			}

		case stBlockComment:
			hasComment = true
			if ch == '*' && next == '/' {
				state = stNormal
				i++
			}

		case stString:
			hasCode = true
			switch {
			case ch == '\\' && next != '\n' && i+1 < len(content):
				i++
			case ch == quote:
				state = stNormal
			}
		}
	}
	endLine()

	return lines
}

func isBlank(ch byte) bool {
	return ch == ' ' || ch == '\t' || ch == '\r' || ch == '\v' || ch == '\f'
}
