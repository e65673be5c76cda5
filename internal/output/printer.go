package output

import (
	"fmt"
	"io"
	"sync"

	"github.com/tanq16/pgfetch/internal/scheduler"
	"github.com/tanq16/pgfetch/internal/utils"
)

// Printer writes per-file outcomes and the run summary. Success lines and the
// summary go to out, failures to errOut. It is safe for concurrent use.
type Printer struct {
	mu        sync.Mutex
	out       io.Writer
	errOut    io.Writer
	outStyles styles
	errStyles styles
}

func NewPrinter(out, errOut io.Writer) *Printer {
	return &Printer{
		out:       out,
		errOut:    errOut,
		outStyles: newStyles(out),
		errStyles: newStyles(errOut),
	}
}

func (p *Printer) FileSucceeded(job utils.Job) {
	p.println(p.out, p.outStyles.success.Render(fmt.Sprintf("File %d downloaded successfully to %s", job.ID, job.OutputPath)))
}

func (p *Printer) FileFailed(job utils.Job, err error) {
	p.println(p.errOut, p.errStyles.err.Render(fmt.Sprintf("Failed to download file %d: %v", job.ID, err)))
}

// Summary prints the single closing line of a run.
func (p *Printer) Summary(result scheduler.Result) {
	p.println(p.out, p.outStyles.summary.Render(SummaryLine(result)))
}

// Error prints a startup problem to errOut.
func (p *Printer) Error(text string) {
	p.println(p.errOut, p.errStyles.err.Render(text))
}

// Detail prints secondary information such as where the report went.
func (p *Printer) Detail(text string) {
	p.println(p.out, p.outStyles.detail.Render(text))
}

func SummaryLine(result scheduler.Result) string {
	return fmt.Sprintf("Downloaded %d files in %.2f seconds using %d threads (%d succeeded, %d failed)",
		result.Files, result.Elapsed.Seconds(), result.Threads, result.Succeeded, result.Failed)
}

func (p *Printer) println(w io.Writer, line string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	fmt.Fprintln(w, line)
}
