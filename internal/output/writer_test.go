package output

import (
	"bytes"
	"encoding/json"
	stderrors "errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lgbarn/infinite-chess-go/internal/chess"
	"github.com/lgbarn/infinite-chess-go/internal/config"
	"github.com/lgbarn/infinite-chess-go/internal/engine"
	"github.com/lgbarn/infinite-chess-go/internal/errors"
	"github.com/lgbarn/infinite-chess-go/internal/testutil"
)

func playGame(t *testing.T, moves ...string) *engine.Game {
	t.Helper()
	pos := testutil.MustParseFEN(t, testutil.StartFEN)
	g, err := engine.NewGame(testutil.BorderedRules(), pos.Placements)
	require.NoError(t, err)
	for _, s := range moves {
		d, err := testutil.ParseUCI(s)
		require.NoError(t, err)
		_, err = g.Play(d)
		require.NoError(t, err, s)
	}
	return g
}

func foolsMate(t *testing.T) *engine.Game {
	return playGame(t, "f2f3", "e7e5", "g2g4", "d8h4")
}

func annotatedConfig() *config.Config {
	return config.NewConfigBuilder().WithMoveList(true).WithHash(true).WithPlyCount(true).Build()
}

func TestNewReport(t *testing.T) {
	cfg := annotatedConfig()
	cfg.Annotation.AddChecks = true
	r := NewReport("fool.yaml", foolsMate(t), cfg)

	assert.Equal(t, "fool.yaml", r.File)
	assert.Equal(t, 4, r.Plies)
	assert.Equal(t, 2, r.Cycle)
	require.NotNil(t, r.Conclusion)
	assert.Equal(t, chess.Conclusion{Winner: chess.Black, Condition: string(chess.Checkmate)}, *r.Conclusion)
	assert.Len(t, r.Moves, 4)
	assert.NotZero(t, r.Hash)
	assert.Equal(t, map[chess.Colour]int{chess.Black: 1}, r.Checks)
}

func TestNewReport_NoAnnotations(t *testing.T) {
	r := NewReport("g", playGame(t, "e2e4"), config.NewConfig())
	assert.Nil(t, r.Conclusion)
	assert.Empty(t, r.Moves)
	assert.Zero(t, r.Hash)
	assert.Nil(t, r.Checks)
	assert.Equal(t, "ongoing", Summary(r))
}

func TestNewReport_ReviewedPosition(t *testing.T) {
	g := foolsMate(t)
	require.NoError(t, g.RewindGameToIndex(1))

	r := NewReport("g", g, annotatedConfig())
	assert.Equal(t, 2, r.Plies)
	assert.Len(t, r.Moves, 2)
	assert.Nil(t, r.Conclusion)
}

func TestFormatMove(t *testing.T) {
	g := playGame(t, "e2e4", "d7d5", "e4d5", "d8d5", "b1c3", "d5e5")
	moves := g.Moves()

	tests := []struct {
		ply  int
		want string
	}{
		{0, "P5,2>5,4"},
		{1, "p4,7>4,5"},
		{2, "P5,4x4,5"},
		{3, "q4,8x4,5"},
		{5, "q4,5>5,5+"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatMove(moves[tt.ply]), "ply %d", tt.ply+1)
	}

	mate := foolsMate(t).Moves()[3]
	assert.Equal(t, "q4,8>8,4#", FormatMove(mate))

	promo := &chess.Move{
		Type:      chess.B(chess.Pawn),
		Start:     chess.C(7, 2),
		End:       chess.C(8, 1),
		Captured:  chess.W(chess.Knight),
		Promotion: chess.B(chess.Queen),
	}
	assert.Equal(t, "p7,2x8,1=Q", FormatMove(promo))
}

func TestSummary(t *testing.T) {
	mate := chess.Conclusion{Winner: chess.White, Condition: "checkmate"}
	draw := chess.Conclusion{Condition: chess.DrawRepetition}

	tests := []struct {
		name string
		r    *Report
		want string
	}{
		{"ongoing", &Report{}, "ongoing"},
		{"concluded", &Report{Conclusion: &mate}, "white checkmate"},
		{"claim matches", &Report{Conclusion: &mate, Claimed: &mate}, "white checkmate"},
		{"claim differs", &Report{Conclusion: &mate, Claimed: &draw}, "white checkmate, claimed draw repetition"},
		{"claim unreached", &Report{Claimed: &draw}, "ongoing, claimed draw repetition"},
		{"illegal", &Report{Illegal: &Rejection{Ply: 3, Move: chess.Draft{Start: chess.C(1, 1), End: chess.C(1, 9)}, Reason: "blocked"}},
			"illegal move at ply 3 (1,1>1,9): blocked"},
		{"error", &Report{Err: stderrors.New("boom")}, "error: boom"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Summary(tt.r))
		})
	}
}

func TestReport_Reject(t *testing.T) {
	r := &Report{}
	d := chess.Draft{Start: chess.C(2, 2), End: chess.C(2, 5)}
	r.Reject(4, d, errors.Rejectf("pawn cannot move %d squares", 3))

	require.NotNil(t, r.Illegal)
	assert.Equal(t, Rejection{Ply: 4, Move: d, Reason: "pawn cannot move 3 squares"}, *r.Illegal)
}

// TestTextWriter_WriteReport verifies the text layout of a report
func TestTextWriter_WriteReport(t *testing.T) {
	var buf bytes.Buffer
	cfg := annotatedConfig()
	r := NewReport("fool.yaml", foolsMate(t), cfg)
	r.Perft = map[int]int64{2: 0, 1: 0}

	w := NewReportWriter(&buf, cfg)
	require.IsType(t, &TextWriter{}, w)
	require.NoError(t, w.WriteReport(r))
	require.NoError(t, w.Close())

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 6)
	assert.Equal(t, "fool.yaml: black checkmate", lines[0])
	assert.Equal(t, "  plies: 4", lines[1])
	assert.True(t, strings.HasPrefix(lines[2], "  hash: "))
	assert.Equal(t, "  perft(1): 0", lines[3])
	assert.Equal(t, "  perft(2): 0", lines[4])
	assert.Equal(t, "1. P6,2>6,3 p5,7>5,5 2. P7,2>7,4 q4,8>8,4#", lines[5])
}

func TestOutputWriter_Wraps(t *testing.T) {
	var buf bytes.Buffer
	ow := NewOutputWriter(&buf, 10)
	for _, s := range []string{"aaaa", "bbbb", "cccc"} {
		ow.Write(s)
	}
	ow.NewLine()
	assert.Equal(t, "aaaa bbbb\ncccc\n", buf.String())
}

// TestJSONWriter_WriteReport verifies the batched JSON layout
func TestJSONWriter_WriteReport(t *testing.T) {
	var buf bytes.Buffer
	cfg := annotatedConfig()
	cfg.Output.Format = config.JSON

	w := NewReportWriter(&buf, cfg)
	require.IsType(t, &JSONWriter{}, w)
	require.NoError(t, w.WriteReport(NewReport("fool.yaml", foolsMate(t), cfg)))
	require.NoError(t, w.WriteReport(&Report{File: "bad.yaml", Err: stderrors.New("no such file")}))
	assert.Zero(t, buf.Len(), "nothing written before Flush")
	require.NoError(t, w.Close())

	var out JSONOutput
	require.NoError(t, json.Unmarshal(buf.Bytes(), &out))
	require.Len(t, out.Games, 2)

	fool := out.Games[0]
	assert.Equal(t, "concluded", fool.Status)
	assert.Equal(t, "black checkmate", fool.Conclusion)
	assert.Equal(t, 4, fool.PlyCount)
	assert.Len(t, fool.Hash, 16)
	require.Len(t, fool.Moves, 4)
	assert.Equal(t, JSONMove{
		Ply: 4, Color: "black", Piece: "queen",
		From: [2]int64{4, 8}, To: [2]int64{8, 4},
		Check: true, Mate: true, Text: "q4,8>8,4#",
	}, fool.Moves[3])

	assert.Equal(t, "error", out.Games[1].Status)
	assert.Equal(t, "no such file", out.Games[1].Error)
}

func TestJSONWriterSingle(t *testing.T) {
	var buf bytes.Buffer
	w := NewJSONWriterSingle(&buf)
	claimed := chess.Conclusion{Condition: chess.DrawStalemate}
	require.NoError(t, w.WriteReport(&Report{File: "a", Plies: 2, Claimed: &claimed}))
	assert.NotZero(t, buf.Len(), "single mode writes immediately")
	require.NoError(t, w.Close())

	var jr JSONReport
	require.NoError(t, json.Unmarshal(buf.Bytes(), &jr))
	assert.Equal(t, "ongoing", jr.Status)
	assert.Equal(t, "draw stalemate", jr.Claimed)
	assert.True(t, jr.Mismatch)
}

func TestReportWriter_JSONLines(t *testing.T) {
	var buf bytes.Buffer
	cfg := config.NewConfigBuilder().WithFormat(config.JSONLines).Build()
	w := NewReportWriter(&buf, cfg)
	require.IsType(t, &JSONWriter{}, w)

	require.NoError(t, w.WriteReport(NewReport("fool.yaml", foolsMate(t), cfg)))
	require.NoError(t, w.WriteReport(&Report{File: "b.yaml", Err: stderrors.New("no such file")}))
	require.NoError(t, w.Close())

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2, "one report per line")
	var first, second JSONReport
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &first))
	require.NoError(t, json.Unmarshal([]byte(lines[1]), &second))
	assert.Equal(t, "fool.yaml", first.File)
	assert.Equal(t, "error", second.Status)
}

// TestReportWriter_Interface verifies that writers implement the interface
func TestReportWriter_Interface(t *testing.T) {
	var buf bytes.Buffer
	var _ ReportWriter = NewTextWriter(&buf, config.NewConfig())
	var _ ReportWriter = NewJSONWriter(&buf)
}

func TestMatches(t *testing.T) {
	mate := &chess.Conclusion{Winner: chess.Black, Condition: "checkmate"}
	stalemate := &chess.Conclusion{Condition: chess.DrawStalemate}
	repetition := &chess.Conclusion{Condition: chess.DrawRepetition}
	illegal := &Rejection{Ply: 1, Reason: "x"}

	tests := []struct {
		name   string
		filter config.FilterConfig
		r      Report
		want   bool
	}{
		{"no filter", config.FilterConfig{}, Report{}, true},
		{"checkmate wanted", config.FilterConfig{MatchCheckmate: true}, Report{Conclusion: mate}, true},
		{"checkmate missing", config.FilterConfig{MatchCheckmate: true}, Report{Conclusion: repetition}, false},
		{"ongoing never matches", config.FilterConfig{MatchDraws: true}, Report{}, false},
		{"stalemate", config.FilterConfig{MatchStalemate: true}, Report{Conclusion: stalemate}, true},
		{"any draw", config.FilterConfig{MatchDraws: true}, Report{Conclusion: repetition}, true},
		{"illegal", config.FilterConfig{MatchIllegal: true}, Report{Illegal: illegal}, true},
		{"within ply bounds", config.FilterConfig{CheckPlyBounds: true, MinPlies: 2, MaxPlies: 4}, Report{Plies: 4}, true},
		{"below ply bounds", config.FilterConfig{CheckPlyBounds: true, MinPlies: 2, MaxPlies: 4}, Report{Plies: 1}, false},
		{"bounds and result", config.FilterConfig{CheckPlyBounds: true, MaxPlies: 10, MatchCheckmate: true}, Report{Plies: 4, Conclusion: mate}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Matches(&tt.r, &tt.filter))
		})
	}
}
