package docx

import (
	"archive/zip"
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ocean48/oceanbot/internal/core/domain"
)

// createTestDOCX creates a minimal valid DOCX file on disk.
func createTestDOCX(t *testing.T, documentXML string) string {
	t.Helper()
	buf := new(bytes.Buffer)
	w := zip.NewWriter(buf)

	// Add [Content_Types].xml (required for valid DOCX)
	contentTypes, _ := w.Create("[Content_Types].xml")
	contentTypes.Write([]byte(`<?xml version="1.0" encoding="UTF-8"?>
<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">
<Default Extension="xml" ContentType="application/xml"/>
</Types>`))

	if documentXML != "" {
		doc, _ := w.Create("word/document.xml")
		doc.Write([]byte(documentXML))
	}

	require.NoError(t, w.Close())

	path := filepath.Join(t.TempDir(), "service_notes.docx")
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o600))
	return path
}

const wordNS = `xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"`

func TestNew(t *testing.T) {
	l := New()
	require.NotNil(t, l)
	assert.Equal(t, domain.FileTypeDOCX, l.FileType())
}

func TestLoad_ParagraphGroups(t *testing.T) {
	xml := `<?xml version="1.0" encoding="UTF-8"?>
<w:document ` + wordNS + `><w:body>
<w:p><w:r><w:t>Opening checklist</w:t></w:r></w:p>
<w:p><w:r><w:t>Polish </w:t></w:r><w:r><w:t>glassware</w:t></w:r></w:p>
<w:p></w:p>
<w:p><w:r><w:t>Closing checklist</w:t></w:r></w:p>
<w:p><w:pPr><w:sectPr/></w:pPr><w:r><w:t>Lock wine cellar</w:t></w:r></w:p>
<w:p><w:r><w:t>Appendix</w:t></w:r></w:p>
</w:body></w:document>`

	docs, err := New().Load(context.Background(), createTestDOCX(t, xml))
	require.NoError(t, err)
	require.Len(t, docs, 3)
	assert.Equal(t, "Opening checklist\nPolish glassware", docs[0].Content)
	assert.Equal(t, "Closing checklist\nLock wine cellar", docs[1].Content)
	assert.Equal(t, "Appendix", docs[2].Content)
	assert.Equal(t, 0, docs[0].Page())
}

func TestLoad_NoDocumentPart(t *testing.T) {
	docs, err := New().Load(context.Background(), createTestDOCX(t, ""))
	require.NoError(t, err)
	assert.Empty(t, docs)
}

func TestLoad_NotAZip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fake.docx")
	require.NoError(t, os.WriteFile(path, []byte("plain text"), 0o600))

	_, err := New().Load(context.Background(), path)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestLoad_TablesAndHyperlinks(t *testing.T) {
	xml := `<?xml version="1.0" encoding="UTF-8"?>
<w:document ` + wordNS + `><w:body>
<w:p><w:r><w:t>BY THE GLASS</w:t></w:r></w:p>
<w:tbl>
<w:tblGrid><w:gridCol/><w:gridCol/></w:tblGrid>
<w:tr>
<w:tc><w:p><w:r><w:t>Joseph Drouhin Chablis</w:t></w:r></w:p></w:tc>
<w:tc><w:p><w:r><w:t>2018</w:t></w:r></w:p></w:tc>
<w:tc><w:p><w:r><w:t>$21</w:t></w:r></w:p></w:tc>
</w:tr>
</w:tbl>
<w:p><w:hyperlink><w:r><w:t>Full list online</w:t></w:r></w:hyperlink></w:p>
<w:sdt><w:sdtContent><w:p><w:r><w:t>Ask your server</w:t></w:r></w:p></w:sdtContent></w:sdt>
</w:body></w:document>`

	docs, err := New().Load(context.Background(), createTestDOCX(t, xml))
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, "BY THE GLASS\nJoseph Drouhin Chablis\t2018\t$21\nFull list online\nAsk your server", docs[0].Content)
}

func TestLoad_TabsAndFieldCodes(t *testing.T) {
	xml := `<?xml version="1.0" encoding="UTF-8"?>
<w:document ` + wordNS + `><w:body>
<w:p><w:pPr><w:tabs><w:tab w:val="left" w:pos="720"/></w:tabs></w:pPr><w:r><w:t>Oysters</w:t><w:tab/><w:t>$4</w:t></w:r></w:p>
<w:p><w:r><w:instrText>PAGE</w:instrText></w:r><w:r><w:t>Shrimp cocktail</w:t></w:r></w:p>
</w:body></w:document>`

	docs, err := New().Load(context.Background(), createTestDOCX(t, xml))
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, "Oysters\t$4\nShrimp cocktail", docs[0].Content)
}

func TestLoad_MalformedDocumentXML(t *testing.T) {
	xml := `<?xml version="1.0" encoding="UTF-8"?>
<w:document ` + wordNS + `><w:body>
<w:p><w:r><w:t>Opening checklist</w:t></w:r></w:p>
<w:p><w:r><w:t>Polish glass`

	docs, err := New().Load(context.Background(), createTestDOCX(t, xml))
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Contains(t, err.Error(), "document.xml")
	assert.Nil(t, docs)
}
