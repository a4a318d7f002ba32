package sgf

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"renju-local/board"
	"renju-local/rules"
	"renju-local/types"
)

// GameInfo holds metadata parsed from an SGF file header.
type GameInfo struct {
	FilePath    string
	FileName    string
	GameID      string
	BoardSize   int
	Rules       string
	PlayerBlack string
	PlayerWhite string
	Date        string
	Result      string
	MoveCount   int
}

// ParseHeader reads an SGF file and extracts metadata from the root node.
func ParseHeader(filePath string) (*GameInfo, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, err
	}

	content := string(data)
	props := parseProperties(content)

	boardSize := board.Size
	if v, ok := props["SZ"]; ok {
		if n, err := strconv.Atoi(v); err == nil {
			boardSize = n
		}
	}

	info := &GameInfo{
		FilePath:    filePath,
		FileName:    filepath.Base(filePath),
		GameID:      props["GN"],
		BoardSize:   boardSize,
		Rules:       props["RU"],
		PlayerBlack: props["PB"],
		PlayerWhite: props["PW"],
		Date:        props["DT"],
		Result:      props["RE"],
		MoveCount:   countMoves(content),
	}
	return info, nil
}

// ParseMoves returns the placements of an SGF file in play order.
func ParseMoves(filePath string) ([]types.HistoryEntry, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, err
	}
	content := string(data)
	if gm := parseProperties(content)["GM"]; gm != "" && gm != "4" {
		return nil, fmt.Errorf("%s: not a gomoku record (GM[%s])", filepath.Base(filePath), gm)
	}

	var moves []types.HistoryEntry
	for i, node := range parseNodes(content) {
		side, p, ok := parseMoveNode(node)
		if !ok {
			continue
		}
		if p.Row < 0 || p.Row >= board.Size || p.Col < 0 || p.Col >= board.Size {
			return nil, fmt.Errorf("%s: node %d: bad move %q", filepath.Base(filePath), i+1, strings.TrimSpace(node))
		}
		moves = append(moves, types.HistoryEntry{Side: side, Action: types.Place(p)})
	}
	return moves, nil
}

// ReplayToEnd parses an SGF file and replays its moves through rs, returning
// the final position and the last outcome.
func ReplayToEnd(filePath string, rs rules.RuleSet) (board.Board, types.Outcome, error) {
	moves, err := ParseMoves(filePath)
	if err != nil {
		return board.New(), types.Outcome{}, err
	}
	b, _, outcome, err := rules.Replay(rs, moves, 0)
	if err != nil {
		return b, outcome, fmt.Errorf("%s: %w", filepath.Base(filePath), err)
	}
	return b, outcome, nil
}

// parseProperties extracts KEY[value] pairs from the root node of an SGF string.
func parseProperties(content string) map[string]string {
	props := make(map[string]string)

	start := strings.Index(content, "(;")
	if start == -1 {
		return props
	}
	start += 2

	// Root node ends at the next ";" or ")" outside a value
	end := len(content)
	for i := start; i < len(content); i++ {
		if content[i] == '[' {
			i = skipValue(content, i)
			continue
		}
		if content[i] == ';' || content[i] == ')' {
			end = i
			break
		}
	}

	extractProps(content[start:end], props)
	return props
}

// skipValue returns the index of the ']' closing the value opened at i.
func skipValue(s string, i int) int {
	i++
	for i < len(s) && s[i] != ']' {
		if s[i] == '\\' && i+1 < len(s) {
			i++
		}
		i++
	}
	return i
}

// extractProps parses KEY[value] pairs from a node string into the map.
func extractProps(node string, props map[string]string) {
	i := 0
	for i < len(node) {
		for i < len(node) && (node[i] == ' ' || node[i] == '\n' || node[i] == '\r' || node[i] == '\t') {
			i++
		}
		if i >= len(node) {
			break
		}

		keyStart := i
		for i < len(node) && node[i] >= 'A' && node[i] <= 'Z' {
			i++
		}
		if i == keyStart {
			i++
			continue
		}
		key := node[keyStart:i]

		for i < len(node) && node[i] == '[' {
			end := skipValue(node, i)
			props[key] = unescapeText(node[i+1 : end]) // last value wins
			i = end + 1
		}
	}
}

func unescapeText(s string) string {
	if !strings.Contains(s, `\`) {
		return s
	}
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		if s[i] == '\\' && i+1 < len(s) {
			i++
		}
		b.WriteByte(s[i])
	}
	return b.String()
}

// countMoves counts the move nodes (;B[...] or ;W[...]) in the SGF.
func countMoves(content string) int {
	count := 0
	for _, node := range parseNodes(content) {
		if _, _, ok := parseMoveNode(node); ok {
			count++
		}
	}
	return count
}

// parseNodes returns all node strings after the root node.
func parseNodes(content string) []string {
	var nodes []string

	start := strings.Index(content, "(;")
	if start == -1 {
		return nodes
	}

	// Skip the root node
	i := start + 2
	for i < len(content) && content[i] != ';' {
		if content[i] == '[' {
			i = skipValue(content, i)
		}
		i++
	}

	for i < len(content) {
		if content[i] != ';' {
			i++
			continue
		}
		nodeStart := i
		i++
		for i < len(content) && content[i] != ';' && content[i] != ')' {
			if content[i] == '[' {
				i = skipValue(content, i)
			}
			i++
		}
		nodes = append(nodes, content[nodeStart:min(i, len(content))])
	}
	return nodes
}

// parseMoveNode extracts side and position from a move node like ";B[hh]".
// An unreadable coordinate yields types.InvalidPos with ok set.
func parseMoveNode(node string) (side types.Side, p types.Pos, ok bool) {
	node = strings.TrimSpace(node)
	if len(node) < 3 || node[0] != ';' || node[2] != '[' {
		return types.None, types.InvalidPos, false
	}
	switch node[1] {
	case 'B':
		side = types.Black
	case 'W':
		side = types.White
	default:
		return types.None, types.InvalidPos, false
	}

	end := strings.IndexByte(node, ']')
	if end == -1 {
		return side, types.InvalidPos, true
	}
	coord := node[3:end]
	if len(coord) != 2 {
		return side, types.InvalidPos, true
	}
	return side, types.Pos{Row: int(coord[1]) - 'a', Col: int(coord[0]) - 'a'}, true
}

// ListGames scans a directory for .sgf files and returns their parsed headers,
// sorted newest-first (by filename, which contains timestamps).
func ListGames(dir string) ([]GameInfo, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read history dir: %w", err)
	}

	var games []GameInfo
	for i := len(entries) - 1; i >= 0; i-- {
		e := entries[i]
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".sgf") {
			continue
		}
		info, err := ParseHeader(filepath.Join(dir, e.Name()))
		if err != nil {
			continue
		}
		games = append(games, *info)
	}
	return games, nil
}
