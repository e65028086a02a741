package app

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/blackwell-systems/inspirehub/internal/controller"
	"github.com/blackwell-systems/inspirehub/internal/library"
	"github.com/blackwell-systems/inspirehub/internal/tui"
	"github.com/blackwell-systems/inspirehub/internal/util"
)

func newUnlockCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "unlock <id>",
		Short: "Watch a short ad to unlock a premium quote or wallpaper",
		Long: `Play the reward ad for a premium item. The item unlocks when the ad
finishes. Press Ctrl+C to close the ad early; the item stays locked.

Unlocks last for the session unless unlock.persist is set in the config.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := args[0]
			if err := ctrl.RequestUnlock(id); err != nil {
				if errors.Is(err, controller.ErrAlreadyAccessible) {
					ok("%s is already available", id)
					return nil
				}
				return err
			}

			if util.IsTTY() {
				err := tui.ShowAdProgress(fmt.Sprintf("Watching ad to unlock %s", id), adProgress, ctrl.CloseAd)
				if err != nil {
					ctrl.CloseAd()
					return err
				}
			} else {
				done := make(chan struct{})
				go func() {
					ctrl.WaitAd()
					close(done)
				}()
				select {
				case <-done:
				case <-cmd.Context().Done():
					ctrl.CloseAd()
					return fmt.Errorf("cancelled by user")
				}
			}
			ctrl.WaitAd()

			if !lib.Accessible(id) {
				warn("Ad closed early, %s is still locked", id)
				return nil
			}
			ok("%s: %s", id, library.NoticeUnlocked)
			if !cfg.Unlock.Persist {
				fmt.Fprintln(out, "  (unlocks last for this session; set unlock.persist to keep them)")
			}
			return nil
		},
	}
}

// adProgress reports the ad's progress and whether it is still playing.
func adProgress() (int, bool) {
	ad := ctrl.Snapshot().Ad
	return ad.Progress, ad.Playing
}
