package diff

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/rotisserie/eris"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/listing-tracker/internal/model"
	"github.com/sells-group/listing-tracker/internal/snapshot"
	"github.com/sells-group/listing-tracker/pkg/sheets"
	"github.com/sells-group/listing-tracker/pkg/sheets/mocks"
)

func ptr(v int64) *int64 { return &v }

func snap(date string, names ...string) model.Snapshot {
	s := model.Snapshot{Date: date}
	for i, n := range names {
		s.Records = append(s.Records, model.ProductRecord{FullName: n, Price: ptr(int64(100 * (i + 1)))})
	}
	return s
}

func TestCompare(t *testing.T) {
	y := snap("2025-10-01", "ROLEX C 126610LN", "ROLEX A 116500", "ROLEX B")
	td := snap("2025-10-02", "ROLEX B", "ROLEX D 228238", "ROLEX C 126610LN")

	got := Compare("2025-10-02", y, td)
	require.Len(t, got, 2)

	assert.Equal(t, model.TrackingEntry{
		Date: "2025-10-02", Status: model.StatusDisappeared,
		FullName: "ROLEX A 116500", ModelCode: "116500", Price: ptr(200),
	}, got[0])
	assert.Equal(t, model.TrackingEntry{
		Date: "2025-10-02", Status: model.StatusAppeared,
		FullName: "ROLEX D 228238", ModelCode: "228238", Price: ptr(200),
	}, got[1])
}

func TestCompare_Ordering(t *testing.T) {
	y := snap("y", "Z gone", "B gone", "keep")
	td := snap("t", "keep", "Y new", "A new")

	var names []string
	var statuses []model.TrackingStatus
	for _, e := range Compare("t", y, td) {
		names = append(names, e.FullName)
		statuses = append(statuses, e.Status)
	}
	assert.Equal(t, []string{"B gone", "Z gone", "A new", "Y new"}, names)
	assert.Equal(t, []model.TrackingStatus{
		model.StatusDisappeared, model.StatusDisappeared,
		model.StatusAppeared, model.StatusAppeared,
	}, statuses)
}

func TestCompare_PriceChangeIsSilent(t *testing.T) {
	y := model.Snapshot{Records: []model.ProductRecord{{FullName: "ROLEX A", Price: ptr(100)}}}
	td := model.Snapshot{Records: []model.ProductRecord{{FullName: "ROLEX A", Price: ptr(999)}}}
	assert.Empty(t, Compare("t", y, td))
}

func TestCompare_EmptySnapshots(t *testing.T) {
	assert.Empty(t, Compare("t", model.Snapshot{}, model.Snapshot{}))

	got := Compare("t", model.Snapshot{}, snap("t", "ROLEX A"))
	require.Len(t, got, 1)
	assert.Equal(t, model.StatusAppeared, got[0].Status)
	assert.Equal(t, "", got[0].ModelCode)
}

type fakeSource struct {
	dates []string
	snaps map[string]model.Snapshot
	err   error
}

func (f *fakeSource) Dates(context.Context) ([]string, error) { return f.dates, f.err }

func (f *fakeSource) Read(_ context.Context, date string) (model.Snapshot, error) {
	s, ok := f.snaps[date]
	if !ok {
		return model.Snapshot{}, eris.Errorf("no snapshot %s", date)
	}
	return s, nil
}

func TestEngine_SkipsWithSingleSnapshot(t *testing.T) {
	c := mocks.NewMockClient(t)
	src := &fakeSource{dates: []string{"2025-10-01"}}

	res, err := NewEngine(src, c, "追蹤").Run(context.Background(), "2025-10-01")
	require.NoError(t, err)
	assert.True(t, res.Skipped)
	assert.Empty(t, res.Entries)
}

func TestEngine_AppendsChanges(t *testing.T) {
	ctx := context.Background()
	c := mocks.NewMockClient(t)
	src := &fakeSource{
		dates: []string{"2025-09-30", "2025-10-01", "2025-10-02"},
		snaps: map[string]model.Snapshot{
			"2025-10-01": snap("2025-10-01", "ROLEX A", "ROLEX B"),
			"2025-10-02": snap("2025-10-02", "ROLEX B", "ROLEX C"),
		},
	}
	want := [][]any{
		{"2025-10-02", "下架", "ROLEX A", "", int64(100)},
		{"2025-10-02", "新增", "ROLEX C", "", int64(200)},
	}
	c.On("AppendRows", ctx, "'追蹤'!A1", want, sheets.UserEntered).Return(nil).Once()

	res, err := NewEngine(src, c, "追蹤").Run(ctx, "2025-10-02")
	require.NoError(t, err)
	assert.False(t, res.Skipped)
	assert.Equal(t, "2025-10-01", res.Yesterday)
	assert.Equal(t, "2025-10-02", res.Today)
	assert.Equal(t, 1, res.Appeared)
	assert.Equal(t, 1, res.Disappeared)
}

func TestEngine_NoChangesAppendsNothing(t *testing.T) {
	c := mocks.NewMockClient(t)
	src := &fakeSource{
		dates: []string{"2025-10-01", "2025-10-02"},
		snaps: map[string]model.Snapshot{
			"2025-10-01": snap("2025-10-01", "ROLEX A"),
			"2025-10-02": snap("2025-10-02", "ROLEX A"),
		},
	}

	res, err := NewEngine(src, c, "追蹤").Run(context.Background(), "2025-10-02")
	require.NoError(t, err)
	assert.Empty(t, res.Entries)
	c.AssertNotCalled(t, "AppendRows", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestEngine_Errors(t *testing.T) {
	ctx := context.Background()

	_, err := NewEngine(&fakeSource{err: eris.New("boom")}, mocks.NewMockClient(t), "追蹤").Run(ctx, "d")
	assert.ErrorContains(t, err, "list snapshots")

	src := &fakeSource{dates: []string{"2025-10-01", "2025-10-02"}, snaps: map[string]model.Snapshot{}}
	_, err = NewEngine(src, mocks.NewMockClient(t), "追蹤").Run(ctx, "d")
	assert.ErrorContains(t, err, "read previous snapshot")

	c := mocks.NewMockClient(t)
	src = &fakeSource{
		dates: []string{"2025-10-01", "2025-10-02"},
		snaps: map[string]model.Snapshot{
			"2025-10-01": snap("2025-10-01"),
			"2025-10-02": snap("2025-10-02", "ROLEX A"),
		},
	}
	c.On("AppendRows", ctx, mock.Anything, mock.Anything, mock.Anything).Return(eris.New("quota")).Once()
	_, err = NewEngine(src, c, "追蹤").Run(ctx, "d")
	assert.ErrorContains(t, err, "append tracking rows")
}

func TestEngine_EndToEndWithWorkbook(t *testing.T) {
	ctx := context.Background()
	c, err := sheets.OpenXLSX(filepath.Join(t.TempDir(), "tracker.xlsx"))
	require.NoError(t, err)

	w := snapshot.NewWriter(c, "")
	_, err = w.Write(ctx, "2025-10-01", []model.ProductRecord{
		{FullName: "ROLEX 116500LN A", Price: ptr(1)},
		{FullName: "ROLEX 126610LN B", Price: ptr(2)},
		{FullName: "ROLEX 126710BLRO C", Price: ptr(3)},
	})
	require.NoError(t, err)
	_, err = w.Write(ctx, "2025-10-02", []model.ProductRecord{
		{FullName: "ROLEX 126610LN B", Price: ptr(20)},
		{FullName: "ROLEX 126710BLRO C", Price: ptr(3)},
		{FullName: "ROLEX 228238 D", Price: ptr(4)},
	})
	require.NoError(t, err)

	res, err := NewEngine(snapshot.NewReader(c), c, snapshot.DefaultTrackingTitle).Run(ctx, "2025-10-02")
	require.NoError(t, err)
	assert.Equal(t, 1, res.Appeared)
	assert.Equal(t, 1, res.Disappeared)

	rows, err := c.Get(ctx, sheets.Range(snapshot.DefaultTrackingTitle, "A2:E"))
	require.NoError(t, err)
	assert.Equal(t, [][]string{
		{"2025-10-02", "下架", "ROLEX 116500LN A", "116500LN", "1"},
		{"2025-10-02", "新增", "ROLEX 228238 D", "228238", "4"},
	}, rows)
}
