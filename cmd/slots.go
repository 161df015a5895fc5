package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/m04kA/SMC-AppointmentDesk/internal/domain"
	blockedSlotRepo "github.com/m04kA/SMC-AppointmentDesk/internal/infra/storage/blockedslot"
)

type slotFlags struct {
	date   string
	hour   int
	reason string
}

func (f *slotFlags) parse() (time.Time, error) {
	date, err := time.Parse(domain.DateFormat, f.date)
	if err != nil {
		return time.Time{}, fmt.Errorf("--date must be YYYY-MM-DD: %w", err)
	}
	if !domain.IsValidHour(f.hour) {
		return time.Time{}, fmt.Errorf("--hour must be within 0-23, got %d", f.hour)
	}
	return date, nil
}

func newBlockSlotCmd(configPath *string) *cobra.Command {
	flags := &slotFlags{}

	cmd := &cobra.Command{
		Use:   "block-slot",
		Short: "Block an hour for all bookings",
		RunE: func(cmd *cobra.Command, args []string) error {
			date, err := flags.parse()
			if err != nil {
				return err
			}

			a, err := bootstrap(*configPath, false)
			if err != nil {
				return err
			}
			defer a.close()

			slot, err := blockedSlotRepo.NewRepository(a.wrapped).Block(context.Background(), date, flags.hour, flags.reason)
			if err != nil {
				return err
			}

			color.Yellow("Blocked %s %02d:00 (%s)", slot.Date.Format(domain.DateFormat), slot.Hour, slot.Reason)
			return nil
		},
	}

	cmd.Flags().StringVar(&flags.date, "date", "", "date, YYYY-MM-DD")
	cmd.Flags().IntVar(&flags.hour, "hour", -1, "hour, 0-23")
	cmd.Flags().StringVar(&flags.reason, "reason", "Maintenance", "reason shown to vendors")
	_ = cmd.MarkFlagRequired("date")
	_ = cmd.MarkFlagRequired("hour")

	return cmd
}

func newUnblockSlotCmd(configPath *string) *cobra.Command {
	flags := &slotFlags{}

	cmd := &cobra.Command{
		Use:   "unblock-slot",
		Short: "Remove a slot block",
		RunE: func(cmd *cobra.Command, args []string) error {
			date, err := flags.parse()
			if err != nil {
				return err
			}

			a, err := bootstrap(*configPath, false)
			if err != nil {
				return err
			}
			defer a.close()

			err = blockedSlotRepo.NewRepository(a.wrapped).Unblock(context.Background(), date, flags.hour)
			if errors.Is(err, blockedSlotRepo.ErrNotFound) {
				color.Yellow("Slot %s %02d:00 was not blocked", flags.date, flags.hour)
				return nil
			}
			if err != nil {
				return err
			}

			color.Green("Unblocked %s %02d:00", flags.date, flags.hour)
			return nil
		},
	}

	cmd.Flags().StringVar(&flags.date, "date", "", "date, YYYY-MM-DD")
	cmd.Flags().IntVar(&flags.hour, "hour", -1, "hour, 0-23")
	_ = cmd.MarkFlagRequired("date")
	_ = cmd.MarkFlagRequired("hour")

	return cmd
}
