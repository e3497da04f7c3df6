package services

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/vocadrill/practice-service/internal/models"
)

func newImportExportFixture(t *testing.T) (ImportExportService, *mockRepository) {
	t.Helper()
	repo := newMockRepository()
	return NewImportExportService(repo, testValidator(t), testLogger()), repo
}

func workbookBytes(t *testing.T, rows [][2]string) *bytes.Reader {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()
	sheet := f.GetSheetName(0)
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow(sheet, cell, &[]interface{}{row[0], row[1]}))
	}

	var buf bytes.Buffer
	require.NoError(t, f.Write(&buf))
	return bytes.NewReader(buf.Bytes())
}

func TestImportSetFromFile(t *testing.T) {
	svc, repo := newImportExportFixture(t)
	ctx := context.Background()

	reader := workbookBytes(t, [][2]string{
		{"term", "definition"},
		{"apple", "a round fruit"},
		{"car", "a road vehicle"},
		{"apple", "a duplicate row"},
		{"", "no term on this row"},
	})

	repo.sets.On("Create", ctx, mock.AnythingOfType("*models.VocabularySet")).
		Run(func(args mock.Arguments) {
			args.Get(1).(*models.VocabularySet).ID = 9
		}).
		Return(nil)

	result, err := svc.ImportSetFromFile(ctx, reader, "words.xlsx", &ImportSetRequest{
		Title:    "Imported words",
		Language: "en",
	}, "user-1")
	require.NoError(t, err)

	assert.Equal(t, 5, result.TotalRows)
	assert.Equal(t, 2, result.SuccessCount)
	assert.Equal(t, 3, result.SkippedCount)
	require.Len(t, result.Errors, 2)

	require.NotNil(t, result.Set)
	assert.Equal(t, uint(9), result.Set.ID)
	assert.Equal(t, "user-1", result.Set.OwnerID)
	require.Len(t, result.Set.Terms, 2)
	assert.Equal(t, "apple", result.Set.Terms[0].Term)
	assert.Equal(t, "car", result.Set.Terms[1].Term)
}

func TestImportRejectsUnsupportedFormat(t *testing.T) {
	svc, repo := newImportExportFixture(t)

	_, err := svc.ImportSetFromFile(context.Background(), bytes.NewReader(nil), "words.csv", &ImportSetRequest{
		Title:    "Imported words",
		Language: "en",
	}, "user-1")
	require.ErrorIs(t, err, ErrUnsupportedFileFormat)
	repo.sets.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestImportRejectsEmptyWorkbook(t *testing.T) {
	svc, _ := newImportExportFixture(t)

	reader := workbookBytes(t, [][2]string{{"term", "definition"}})

	_, err := svc.ImportSetFromFile(context.Background(), reader, "words.xlsx", &ImportSetRequest{
		Title:    "Imported words",
		Language: "en",
	}, "user-1")
	assert.ErrorIs(t, err, ErrImportNoRows)
}

func TestExportSetToExcel(t *testing.T) {
	svc, repo := newImportExportFixture(t)
	ctx := context.Background()

	set := testSet("user-1",
		[2]string{"apple", "a round fruit"},
		[2]string{"car", "a road vehicle"},
	)
	repo.sets.On("GetByIDWithTerms", ctx, uint(42)).Return(set, nil)

	payload, err := svc.ExportSetToExcel(ctx, 42, "user-1")
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(payload))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(f.GetSheetName(0))
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"term", "definition"}, rows[0])
	assert.Equal(t, []string{"apple", "a round fruit"}, rows[1])
	assert.Equal(t, []string{"car", "a road vehicle"}, rows[2])
}

func TestExportChecksOwnership(t *testing.T) {
	svc, repo := newImportExportFixture(t)
	ctx := context.Background()

	set := testSet("owner", [2]string{"apple", "a round fruit"})
	repo.sets.On("GetByIDWithTerms", ctx, uint(42)).Return(set, nil)

	_, err := svc.ExportSetToExcel(ctx, 42, "intruder")
	assert.ErrorIs(t, err, ErrSetAccessDenied)
}
