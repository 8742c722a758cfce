package descriptions

// Tool descriptions shown to MCP clients

const (
	ExamParseFilenameDescription = `Extract exam metadata from a question paper filename such as 9702_s23_qp_41.pdf.

**When to use:** Need the subject, grade, year, paper code or question type of a paper and only have its filename.

**What you get:** A JSON record with subject_code, subject, grade_level, grade, year, paper_code and question_type. Fields that cannot be recognised are null; the call never fails on odd filenames.

**Examples:**
• "9702_s23_qp_41.pdf" → Physics, A-Level Physics, 2023, paper 41, A Level Structured Questions
• "9700_m21_qp_12.pdf" → Biology, AS-Level Biology, 2021, paper 12, Multiple Choice
• "9701_w19_33.pdf" → Chemistry, A-Level Chemistry, 2019, paper 33, Advanced Practical Skills

**Best practices:** No file access happens; pass the bare filename, not a path.`

	ExamCatalogDirectoryDescription = `List the question papers in a directory with their filename metadata.

**When to use:** Building an index of past papers, or finding every paper for a subject, year, level or paper code.

**Filters (all optional):** subject_code (e.g. 9702), year (e.g. 2023), level ("AS-Level" or "A-Level"), paper_code (e.g. 41).

**What you get:** Matching papers sorted by path, plus counts per subject and per year and the number of PDFs whose names carried no recognisable tokens.`

	ExamValidatePaperDescription = `Check that a question paper is a readable PDF inside the papers directory and within the size limit.

**When to use:** Before ingesting an uploaded paper.`

	ExamPaperStatsDescription = `Get page count, document info (title, author, producer, creation date) and filename metadata for one question paper.`

	ExamFormFillDescription = `Work out how an upload form would be auto-filled for a paper.

**When to use:** A fillable PDF upload form has grade and subject choice fields and a year text field, and you want the selections that match a paper's filename.

**Parameters:** form (path to the fillable PDF), filename (the paper's filename), and optionally grade_field, subject_field and year_field when the form uses other field names.

**What you get:** Which fields would change and to which option values. Labels with no matching option are left alone.`

	ExamServerInfoDescription = `Get server information: papers directory, paper count, known subjects and the paper code table.`
)
