package main

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"leasehub-backend/internal/adapter/repository/gormrepo"
	"leasehub-backend/internal/app"
	"leasehub-backend/internal/logger"
	ucRenewal "leasehub-backend/internal/usecase/renewal"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newRenewalCheckCmd(opts *rootOptions) *cobra.Command {
	var stage string
	cmd := &cobra.Command{
		Use:   "renewal-check",
		Short: "Print the current renewal worklist and summary",
		Long: "Evaluates every active lease against today's date and prints the renewal worklist. " +
			"Meant to run from a scheduler; exits non-zero when storage is unavailable.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			gdb, err := opts.openDB()
			if err != nil {
				return err
			}
			defer closeDB(gdb)

			loc, err := opts.cfg.Renewal.Location()
			if err != nil {
				return err
			}
			uc := ucRenewal.NewUsecase(gormrepo.NewLeaseRepository(gdb), app.LocalCalendar(time.Now, loc), nil)
			ctx := cmd.Context()
			if d := opts.cfg.Database.QueryTimeout; d > 0 {
				var cancel context.CancelFunc
				ctx, cancel = context.WithTimeout(ctx, d)
				defer cancel()
			}
			return runRenewalCheck(ctx, uc, cmd.OutOrStdout(), stage)
		},
	}
	cmd.Flags().StringVar(&stage, "stage", "", "only list alerts in this stage (critical, offer_due, review_due, no_action)")
	return cmd
}

func runRenewalCheck(ctx context.Context, uc *ucRenewal.Usecase, w io.Writer, stage string) error {
	feed, err := uc.Feed(ctx, ucRenewal.FeedFilter{Stage: stage})
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "STAGE\tDAYS\tLEASE\tUNIT\tTENANT\tLEASE END\tRENEWAL")
	for _, a := range feed.Alerts {
		end := ""
		if a.Lease.LeaseEnd != nil {
			end = a.Lease.LeaseEnd.Format("2006-01-02")
		}
		fmt.Fprintf(tw, "%s\t%d\t%s\t%s\t%s\t%s\t%s\n",
			a.Stage, a.DaysRemaining, a.Lease.LeaseID, a.Lease.UnitID, a.Lease.TenantName, end, a.RenewalStatus)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	fmt.Fprintf(w, "\nas of %s: %d critical, %d action needed, %d total\n",
		feed.AsOf.Format("2006-01-02"), feed.Summary.Critical, feed.Summary.ActionNeeded, feed.Summary.Total)

	logger.Info("renewal check",
		zap.Int("critical", feed.Summary.Critical),
		zap.Int("action_needed", feed.Summary.ActionNeeded),
		zap.Int("total", feed.Summary.Total))
	return nil
}
