package batch

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func TestReadBatchFile(t *testing.T) {
	tests := []struct {
		name        string
		fileContent string
		want        []Entry
		wantErr     bool
	}{
		{
			name:        "empty file",
			fileContent: "",
			want:        nil,
		},
		{
			name:        "only whitespace",
			fileContent: "   \n\t\r\n   ",
			want:        nil,
		},
		{
			name: "sources only",
			fileContent: `https://arxiv.org/pdf/2106.14881.pdf
/tmp/local.pdf`,
			want: []Entry{
				{Source: "https://arxiv.org/pdf/2106.14881.pdf", Line: 1},
				{Source: "/tmp/local.pdf", Line: 2},
			},
		},
		{
			name: "with outputs and comments",
			fileContent: `# papers to translate
https://arxiv.org/pdf/2106.14881.pdf = vit.json

  /tmp/a.pdf	=	a.json  
`,
			want: []Entry{
				{Source: "https://arxiv.org/pdf/2106.14881.pdf", Output: "vit.json", Line: 2},
				{Source: "/tmp/a.pdf", Output: "a.json", Line: 4},
			},
		},
		{
			name:        "equals inside url is kept",
			fileContent: "https://example.com/get?id=42&fmt=pdf",
			want: []Entry{
				{Source: "https://example.com/get?id=42&fmt=pdf", Line: 1},
			},
		},
		{
			name:        "equals inside url with output",
			fileContent: "https://example.com/get?id=42 = out.json\r\n",
			want: []Entry{
				{Source: "https://example.com/get?id=42", Output: "out.json", Line: 1},
			},
		},
		{
			name:        "missing source",
			fileContent: "a.pdf\n = out.json",
			wantErr:     true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tmpDir := t.TempDir()
			batchFile := filepath.Join(tmpDir, "batch.txt")
			if err := os.WriteFile(batchFile, []byte(tt.fileContent), 0644); err != nil {
				t.Fatalf("Failed to create test file: %v", err)
			}

			got, err := ReadBatchFile(batchFile)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ReadBatchFile() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}

			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ReadBatchFile() = %#v, want %#v", got, tt.want)
			}
		})
	}
}

func TestReadBatchFile_NonExistent(t *testing.T) {
	_, err := ReadBatchFile("/non/existent/file.txt")
	if err == nil {
		t.Fatal("Expected error for non-existent file")
	}
	if !strings.Contains(err.Error(), "failed to read batch file") {
		t.Errorf("Unexpected error message: %v", err)
	}
}
