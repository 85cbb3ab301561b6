package utils

// SplitText splits a long string into chunks of approximately 'chunkSize' characters.
// It includes an 'overlap' to preserve context at boundaries and prefers breaking
// at a newline near the chunk end so reference material stays readable.
func SplitText(text string, chunkSize int, overlap int) []string {
	if len(text) <= chunkSize {
		return []string{text}
	}

	var chunks []string
	runes := []rune(text)
	totalLen := len(runes)

	if overlap >= chunkSize {
		overlap = 0
	}

	start := 0
	for start < totalLen {
		end := start + chunkSize
		if end >= totalLen {
			end = totalLen
		} else {
			end = breakAtNewline(runes, start, end)
		}

		chunks = append(chunks, string(runes[start:end]))

		if end == totalLen {
			break
		}

		next := end - overlap
		if next <= start {
			next = end
		}
		start = next
	}

	return chunks
}

// breakAtNewline walks back from 'end' looking for a newline within the last
// tenth of the chunk. Falls back to the hard boundary when none is found.
func breakAtNewline(runes []rune, start, end int) int {
	window := (end - start) / 10
	for i := end - 1; i > end-window && i > start; i-- {
		if runes[i] == '\n' {
			return i + 1
		}
	}
	return end
}
