package main

const usageText = `docx2pdf - convert DOCX documents to PDF via headless Chrome

Usage:
  docx2pdf [flags] <input.docx> [input2.docx ...]

Output:
  -o, --output DIR       output directory (default: alongside input)
      --base64           print base64 PDF to stdout instead of writing a file

Page:
      --format FORMAT    page format: A4, Letter, Legal (default A4)
      --margin N         margin for all sides in inches (default 1)
      --margin-top N     top margin in inches
      --margin-right N   right margin in inches
      --margin-bottom N  bottom margin in inches
      --margin-left N    left margin in inches
      --no-headers       disable header/footer placeholders
      --smart            guess page format and headers from document content
      --style-map FILE   style map file (p[style-name='X'] => tag.class)

General:
  -c, --config NAME      config file name or path
  -w, --workers N        concurrent conversions (0 = auto)
  -t, --timeout DUR      per-conversion render timeout (default 30s)
  -q, --quiet            only show errors
  -v, --verbose          show extraction diagnostics and timing
      --version          print version and exit
  -h, --help             show help

Exit codes:
  0 success, 1 general error, 2 usage error, 3 I/O error, 4 browser error
`
