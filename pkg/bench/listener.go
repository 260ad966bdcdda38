package bench

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/logrusorgru/aurora"
	"github.com/schollz/progressbar/v3"
)

// Arena callbacks. Workers call them concurrently, implementations must be
// safe for that.
type ListenerLike interface {
	OnStart(nGames int)
	OnGameStart(info VersusWorkerInfo)
	OnMoveMade(info VersusWorkerInfo)
	OnFinishedGame(info VersusWorkerInfo, record GameRecord)
	OnFinishedWork(info VersusWorkerInfo)
	Summary(summary VersusSummaryInfo)
	OnEnd()
}

type NopListener struct{}

func (NopListener) OnStart(int)                                 {}
func (NopListener) OnGameStart(VersusWorkerInfo)                {}
func (NopListener) OnMoveMade(VersusWorkerInfo)                 {}
func (NopListener) OnFinishedGame(VersusWorkerInfo, GameRecord) {}
func (NopListener) OnFinishedWork(VersusWorkerInfo)             {}
func (NopListener) Summary(VersusSummaryInfo)                   {}
func (NopListener) OnEnd()                                      {}

// Shows a progress bar of the finished games and prints the summary at the end
type ProgressListener struct {
	NopListener
	out     io.Writer
	bar     *progressbar.ProgressBar
	mu      sync.Mutex
	summary VersusSummaryInfo
}

func NewProgressListener(out io.Writer) *ProgressListener {
	if out == nil {
		out = os.Stdout
	}
	return &ProgressListener{out: out}
}

func (l *ProgressListener) OnStart(nGames int) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.bar = progressbar.NewOptions(nGames,
		progressbar.OptionSetWriter(l.out),
		progressbar.OptionSetDescription("playing"),
		progressbar.OptionSetWidth(50),
		progressbar.OptionShowCount(),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        aurora.Yellow("█").String(),
			SaucerHead:    aurora.Yellow("█").String(),
			SaucerPadding: " ",
			BarStart:      "|",
			BarEnd:        "|",
		}),
	)
}

func (l *ProgressListener) OnFinishedGame(info VersusWorkerInfo, record GameRecord) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.bar != nil {
		_ = l.bar.Add(1)
	}
}

func (l *ProgressListener) Summary(summary VersusSummaryInfo) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.summary = summary
}

func (l *ProgressListener) OnEnd() {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.bar != nil {
		_ = l.bar.Finish()
		_ = l.bar.Close()
	}

	s := l.summary
	fmt.Fprintln(l.out)
	fmt.Fprintf(l.out, "%s %s games on %s\n", aurora.Bold("Summary:"), aurora.Cyan(s.TotalGames), s.Board)
	fmt.Fprintf(l.out, "  %-10s %s wins\n", s.P1Name, aurora.Green(s.P1Wins))
	fmt.Fprintf(l.out, "  %-10s %s wins\n", s.P2Name, aurora.Red(s.P2Wins))
	fmt.Fprintf(l.out, "  first to move won %d, second to move won %d\n", s.FirstToMoveWins, s.SecondToMoveWins)
}
