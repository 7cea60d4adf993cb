package sheets

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/xuri/excelize/v2"

	"clipbatch/internal/core/domain"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestReadJobs_CSV(t *testing.T) {
	path := writeFile(t, "jobs.csv", "\ufeffurl,nome_do_arquivo,start_time,end_time\n"+
		"https://youtu.be/a, Intro ,00:10,00:01:00\n"+
		",skipme,,\n"+
		",,,\n"+
		"https://youtu.be/c,,,00:30\n"+
		",,,\n")

	specs, err := NewJobReader().ReadJobs(path)
	if err != nil {
		t.Fatalf("ReadJobs failed: %v", err)
	}

	want := []domain.JobSpec{
		{Number: 1, URL: "https://youtu.be/a", Name: "Intro", Start: "00:10", End: "00:01:00"},
		{Number: 2, URL: "", Name: "skipme"},
		{Number: 3},
		{Number: 4, URL: "https://youtu.be/c", End: "00:30"},
	}
	if len(specs) != len(want) {
		t.Fatalf("got %d specs, want %d: %+v", len(specs), len(want), specs)
	}
	for i := range want {
		if specs[i] != want[i] {
			t.Errorf("spec %d = %+v; want %+v", i, specs[i], want[i])
		}
	}
}

func TestReadJobs_BlankRowKeepsNumbering(t *testing.T) {
	path := writeFile(t, "jobs.csv", "url,id\nhttps://youtu.be/a,a\n,,\nhttps://youtu.be/c,c\n")

	specs, err := NewJobReader().ReadJobs(path)
	if err != nil {
		t.Fatalf("ReadJobs failed: %v", err)
	}
	if len(specs) != 3 {
		t.Fatalf("got %d specs, want 3: %+v", len(specs), specs)
	}
	if specs[1].URL != "" || specs[1].Number != 2 {
		t.Errorf("blank row should stay as row 2 with no url, got %+v", specs[1])
	}
	if specs[2].URL != "https://youtu.be/c" || specs[2].Number != 3 {
		t.Errorf("row after the blank one = %+v; want number 3", specs[2])
	}
}

func TestReadJobs_NameColumnPriority(t *testing.T) {
	path := writeFile(t, "jobs.csv", "name,URL,id\nfrom-name,https://x.test/v,from-id\n")

	specs, err := NewJobReader().ReadJobs(path)
	if err != nil {
		t.Fatalf("ReadJobs failed: %v", err)
	}
	if len(specs) != 1 || specs[0].Name != "from-id" {
		t.Errorf("expected id column to win, got %+v", specs)
	}
	if specs[0].URL != "https://x.test/v" {
		t.Errorf("header match should ignore case, got url %q", specs[0].URL)
	}
}

func TestReadJobs_XLSX(t *testing.T) {
	path := filepath.Join(t.TempDir(), "jobs.xlsx")
	wb := excelize.NewFile()
	sheet := wb.GetSheetName(0)
	rows := [][]any{
		{"url", "id", "start_time", "end_time"},
		{"https://youtu.be/a", "first", "00:00:05", ""},
		{"", "second"},
	}
	for i, row := range rows {
		cell, _ := excelize.CoordinatesToCellName(1, i+1)
		if err := wb.SetSheetRow(sheet, cell, &row); err != nil {
			t.Fatal(err)
		}
	}
	if err := wb.SaveAs(path); err != nil {
		t.Fatal(err)
	}
	wb.Close()

	specs, err := NewJobReader().ReadJobs(path)
	if err != nil {
		t.Fatalf("ReadJobs failed: %v", err)
	}
	want := []domain.JobSpec{
		{Number: 1, URL: "https://youtu.be/a", Name: "first", Start: "00:00:05"},
		{Number: 2, Name: "second"},
	}
	if len(specs) != len(want) {
		t.Fatalf("got %d specs, want %d", len(specs), len(want))
	}
	for i := range want {
		if specs[i] != want[i] {
			t.Errorf("spec %d = %+v; want %+v", i, specs[i], want[i])
		}
	}
}

func TestReadJobs_Errors(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
		check   func(error) bool
	}{
		{
			name:    "Unsupported extension",
			file:    "jobs.txt",
			content: "url\nhttps://x.test\n",
			check: func(err error) bool {
				var target *UnsupportedFormatError
				return errors.As(err, &target)
			},
		},
		{
			name:    "Missing url column",
			file:    "jobs.csv",
			content: "link,id\nhttps://x.test,a\n",
			check:   func(err error) bool { return errors.Is(err, ErrMissingURLColumn) },
		},
		{
			name:    "Empty file",
			file:    "jobs.csv",
			content: "",
			check:   func(err error) bool { return errors.Is(err, ErrMissingURLColumn) },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFile(t, tt.file, tt.content)
			_, err := NewJobReader().ReadJobs(path)
			if err == nil || !tt.check(err) {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestReadJobs_MissingFile(t *testing.T) {
	if _, err := NewJobReader().ReadJobs(filepath.Join(t.TempDir(), "absent.csv")); err == nil {
		t.Fatal("expected error for missing file")
	}
}
