// Package terminal plays the game in a character terminal. A tview form picks the
// difficulty; a tcell loop then runs the session, drawing the 800×600 field scaled to
// the terminal grid with each character shown as its initial.
package terminal

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"chosenoffset.com/kizilcik/internal/ui/hud"
	"chosenoffset.com/kizilcik/internal/ui/label"
)

// StartForm is the start screen: a difficulty dropdown with Başlat and Çıkış buttons.
type StartForm struct {
	app     *tview.Application
	form    *tview.Form
	names   []string
	current int
	start   bool
}

func applyStyles() {
	tview.Styles.PrimitiveBackgroundColor = tcell.ColorBlack
	tview.Styles.ContrastBackgroundColor = tcell.ColorDarkRed
	tview.Styles.MoreContrastBackgroundColor = tcell.ColorBlack
	tview.Styles.BorderColor = tcell.ColorCrimson
	tview.Styles.TitleColor = tcell.ColorCrimson
	tview.Styles.PrimaryTextColor = tcell.ColorWhite
	tview.Styles.SecondaryTextColor = tcell.ColorPink
	tview.Styles.InverseTextColor = tcell.ColorBlack
}

// NewStartForm builds the form with current preselected.
func NewStartForm(title string, difficulties []string, current string) *StartForm {
	applyStyles()
	f := &StartForm{app: tview.NewApplication(), names: difficulties}

	labels := make([]string, len(difficulties))
	for i, d := range difficulties {
		labels[i] = label.Difficulty(d)
		if d == current {
			f.current = i
		}
	}

	f.form = tview.NewForm().
		AddDropDown("Zorluk", labels, f.current, func(_ string, i int) {
			if i >= 0 {
				f.current = i
			}
		}).
		AddButton(hud.LabelStart, func() {
			f.start = true
			f.app.Stop()
		}).
		AddButton("Çıkış", func() {
			f.start = false
			f.app.Stop()
		})
	f.form.SetBorder(true).SetTitle(" " + label.Upper(title) + " ")
	f.form.SetCancelFunc(func() {
		f.start = false
		f.app.Stop()
	})
	return f
}

// Selected returns the chosen difficulty tier.
func (f *StartForm) Selected() string {
	if f.current < 0 || f.current >= len(f.names) {
		return ""
	}
	return f.names[f.current]
}

// Run shows the form until a button is pressed. It reports the chosen tier and whether
// the player asked to start. A nil screen lets tview open the terminal itself.
func (f *StartForm) Run(screen tcell.Screen) (string, bool, error) {
	f.start = false
	if screen != nil {
		f.app.SetScreen(screen)
	}

	frame := tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(nil, 0, 1, false).
		AddItem(tview.NewFlex().SetDirection(tview.FlexColumn).
			AddItem(nil, 0, 1, false).
			AddItem(f.form, 40, 0, true).
			AddItem(nil, 0, 1, false), 9, 0, true).
		AddItem(nil, 0, 1, false)

	if err := f.app.SetRoot(frame, true).EnableMouse(true).Run(); err != nil {
		return "", false, fmt.Errorf("start form failed: %w", err)
	}
	return f.Selected(), f.start, nil
}
