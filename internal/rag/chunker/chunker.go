package chunker

import (
	"strings"
)

// Split cuts text into overlapping passages of at most chunkSize
// characters, stepping forward by chunkSize-overlap each time. Boundaries
// back up to a sentence end or whitespace when one is close enough, so
// chunks usually break cleanly but never shrink below half the window.
// Pure function: the same input and parameters always give the same
// sequence. Empty or whitespace-only input gives no chunks.
func Split(text string, chunkSize int, overlap int) []string {
	if strings.TrimSpace(text) == "" {
		return nil
	}
	if chunkSize <= 0 {
		return nil
	}
	if overlap < 0 {
		overlap = 0
	}
	if overlap >= chunkSize {
		overlap = chunkSize - 1
	}

	if len(text) <= chunkSize {
		return []string{strings.TrimSpace(text)}
	}

	var chunks []string
	start := 0
	for start < len(text) {
		end := start + chunkSize
		if end >= len(text) {
			end = len(text)
		} else {
			end = adjustBoundary(text, start, end)
		}

		chunk := strings.TrimSpace(text[start:end])
		if chunk != "" {
			chunks = append(chunks, chunk)
		}

		if end == len(text) {
			break
		}
		next := end - overlap
		if next <= start {
			next = start + 1 //always make progress, even with pathological params
		}
		start = next
	}
	return chunks
}

// adjustBoundary pulls the cut point back to the nearest sentence ending
// (within 100 chars) or whitespace (within 50 chars). The floor at half
// the window keeps a run of unbroken text from collapsing the chunk.
func adjustBoundary(text string, start, end int) int {
	floor := start + (end-start)/2

	sentenceFloor := end - 100
	if sentenceFloor < floor {
		sentenceFloor = floor
	}
	for i := end; i > sentenceFloor; i-- {
		switch text[i-1] {
		case '.', '!', '?':
			return i
		}
	}

	wordFloor := end - 50
	if wordFloor < floor {
		wordFloor = floor
	}
	for i := end; i > wordFloor; i-- {
		if isSpace(text[i-1]) {
			return i - 1
		}
	}
	return end
}

func isSpace(b byte) bool {
	return b == ' ' || b == '\n' || b == '\t' || b == '\r'
}
