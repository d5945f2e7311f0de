package store

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/parquet-go/parquet-go"
	"github.com/parquet-go/parquet-go/compress/zstd"

	"github.com/brensch/snakesaver/game"
)

const historySchema = "history_turn_v1"

// HistoryRow is one turn of a run. Cell coordinates are repeated on every
// row so a single row is enough to redraw its board.
type HistoryRow struct {
	RunID    string `parquet:"run_id,dict"`
	Topology string `parquet:"topology,dict"`
	Outcome  string `parquet:"outcome,dict"`

	Turn int32 `parquet:"turn"`
	Head int32 `parquet:"head"`
	// Food is -1 when the board holds none.
	Food int32 `parquet:"food"`
	// Snake lists linked cells in ID order. The tail is not included.
	Snake []int32 `parquet:"snake"`

	CellX []int32 `parquet:"cell_x"`
	CellY []int32 `parquet:"cell_y"`
}

// RunMeta is the per-run data carried on every row.
type RunMeta struct {
	RunID    string
	Topology string
	Outcome  string
}

func HistoryRows(meta RunMeta, history []game.BoardState) []HistoryRow {
	rows := make([]HistoryRow, 0, len(history))
	for _, s := range history {
		row := HistoryRow{
			RunID:    meta.RunID,
			Topology: meta.Topology,
			Outcome:  meta.Outcome,
			Turn:     int32(s.Turn),
			Head:     int32(s.Head),
			Food:     int32(s.Food()),
			CellX:    make([]int32, len(s.Cells)),
			CellY:    make([]int32, len(s.Cells)),
		}
		for _, id := range s.Snake() {
			row.Snake = append(row.Snake, int32(id))
		}
		for i, c := range s.Cells {
			row.CellX[i] = c.Coord.X
			row.CellY[i] = c.Coord.Y
		}
		rows = append(rows, row)
	}
	return rows
}

// RowsToHistory rebuilds board states from rows of a single run, ordered by
// turn.
func RowsToHistory(rows []HistoryRow) ([]game.BoardState, RunMeta, error) {
	if len(rows) == 0 {
		return nil, RunMeta{}, fmt.Errorf("no rows")
	}
	sorted := make([]HistoryRow, len(rows))
	copy(sorted, rows)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Turn < sorted[j].Turn })

	meta := RunMeta{RunID: sorted[0].RunID, Topology: sorted[0].Topology, Outcome: sorted[0].Outcome}
	out := make([]game.BoardState, 0, len(sorted))
	for _, r := range sorted {
		if r.RunID != meta.RunID {
			return nil, RunMeta{}, fmt.Errorf("turn %d belongs to run %q, want %q", r.Turn, r.RunID, meta.RunID)
		}
		if len(r.CellX) != len(r.CellY) {
			return nil, RunMeta{}, fmt.Errorf("turn %d: %d x coordinates but %d y", r.Turn, len(r.CellX), len(r.CellY))
		}
		n := int32(len(r.CellX))
		inRange := func(id int32) bool { return id >= 0 && id < n }

		s := game.BoardState{
			Turn:  int(r.Turn),
			Head:  game.NoCell,
			Cells: make([]game.CellState, n),
		}
		for i := range s.Cells {
			s.Cells[i] = game.CellState{
				ID:    game.CellID(i),
				Coord: game.Point{X: r.CellX[i], Y: r.CellY[i]},
			}
		}
		if r.Head >= 0 {
			if !inRange(r.Head) {
				return nil, RunMeta{}, fmt.Errorf("turn %d: head %d out of range", r.Turn, r.Head)
			}
			s.Head = game.CellID(r.Head)
		}
		for _, id := range r.Snake {
			if !inRange(id) {
				return nil, RunMeta{}, fmt.Errorf("turn %d: snake cell %d out of range", r.Turn, id)
			}
			s.Cells[id].IsSnake = true
		}
		if r.Food >= 0 {
			if !inRange(r.Food) {
				return nil, RunMeta{}, fmt.Errorf("turn %d: food %d out of range", r.Turn, r.Food)
			}
			if s.Cells[r.Food].IsSnake {
				return nil, RunMeta{}, fmt.Errorf("turn %d: cell %d is both snake and food", r.Turn, r.Food)
			}
			s.Cells[r.Food].IsFood = true
		}
		out = append(out, s)
	}
	return out, meta, nil
}

// WriteHistoryParquet writes rows to outPath through a temporary file that
// is renamed into place once complete.
func WriteHistoryParquet(outPath string, rows []HistoryRow) error {
	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	tmpPath := outPath + ".tmp"
	_ = os.Remove(tmpPath)

	if err := parquet.WriteFile(tmpPath, rows,
		parquet.Compression(&zstd.Codec{Level: zstd.SpeedBetterCompression}),
		parquet.KeyValueMetadata("schema", historySchema),
	); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("write parquet: %w", err)
	}

	if err := os.Rename(tmpPath, outPath); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("rename parquet: %w", err)
	}
	return nil
}

func ReadHistoryParquet(path string) ([]HistoryRow, error) {
	rows, err := parquet.ReadFile[HistoryRow](path)
	if err != nil {
		return nil, fmt.Errorf("read parquet %s: %w", path, err)
	}
	return rows, nil
}

// HistoryFileName is the file a run is exported to inside the export dir.
func HistoryFileName(runID string) string {
	return "run_" + runID + ".parquet"
}
