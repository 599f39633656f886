// internal/words/words.go
//
// Board word pool for the game.
//
// Responsibilities:
//   - Load the pool from an environment-provided file or fall back to the
//     embedded default list.
//   - Normalize entries (trim, uppercase, dedupe).
//   - Sample distinct words without replacement for board creation.
//
// Initialization behavior (Init):
//   1. If WORDS_FILE is set, load one word per line from that file.
//   2. Otherwise use the embedded default list from `boardwords.txt`.
//
// Constraints:
//   - Words must be non-empty after trimming; no other content restriction.
//   - The pool must end up with at least 25 distinct entries.
//   - Initialization is run once (sync.Once).

package words

import (
	"bufio"
	_ "embed"
	"fmt"
	"math/rand"
	"os"
	"strings"
	"sync"
)

// MinPoolSize is the smallest usable pool: one word per board position.
const MinPoolSize = 25

//go:embed boardwords.txt
var embedded string

var (
	initOnce   sync.Once
	pool       []string
	initialErr error
)

// Init loads the word pool exactly once. Returns an error if the pool ends up
// with fewer than 25 distinct words.
func Init() error {
	initOnce.Do(func() {
		var lines []string
		if path := os.Getenv("WORDS_FILE"); path != "" {
			var err error
			lines, err = readWordFile(path)
			if err != nil {
				initialErr = err
				return
			}
		} else {
			lines = strings.Split(embedded, "\n")
		}

		pool = normalize(lines)
		if len(pool) < MinPoolSize {
			initialErr = fmt.Errorf("words: pool has %d words, need at least %d", len(pool), MinPoolSize)
		}
	})
	return initialErr
}

// readWordFile loads one word per line from a file.
func readWordFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	var out []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		out = append(out, sc.Text())
	}
	return out, sc.Err()
}

// normalize trims, uppercases, and dedupes, skipping blanks and # comments.
func normalize(lines []string) []string {
	seen := make(map[string]struct{}, len(lines))
	var out []string
	for _, line := range lines {
		w := strings.ToUpper(strings.TrimSpace(line))
		if w == "" || strings.HasPrefix(w, "#") {
			continue
		}
		if _, dup := seen[w]; dup {
			continue
		}
		seen[w] = struct{}{}
		out = append(out, w)
	}
	return out
}

// Count returns the number of words in the loaded pool.
func Count() int {
	return len(pool)
}

// Sample returns n distinct words drawn without replacement from the pool.
// Returns an error when the pool holds fewer than n words.
func Sample(n int) ([]string, error) {
	if len(pool) < n {
		return nil, fmt.Errorf("words: pool has %d words, need %d", len(pool), n)
	}
	shuffled := append([]string(nil), pool...)
	rand.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})
	return shuffled[:n], nil
}
