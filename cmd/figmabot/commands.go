package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aleister1102/figmabot/internal/common"
	"github.com/aleister1102/figmabot/internal/datastore"
	"github.com/aleister1102/figmabot/internal/models"
	"github.com/aleister1102/figmabot/internal/server"
	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	flags := &AppFlags{}
	root := &cobra.Command{
		Use:           "figmabot",
		Short:         "Chat bot that lists the Figma files subscribed in a room",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	flags.register(root)

	root.AddCommand(
		newServeCmd(flags),
		newFilesCmd(flags),
		newExportCmd(flags),
		newImportCmd(flags),
		newTokenCmd(flags),
	)
	return root
}

func newServeCmd(flags *AppFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP command endpoint",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			a, err := loadApp(flags)
			if err != nil {
				return err
			}
			defer a.Close()

			svc, err := a.buildService(ctx, cmd.OutOrStdout())
			if err != nil {
				return err
			}
			return server.New(a.cfg.ServerConfig, svc, a.zlog).Run(ctx)
		},
	}
}

func newFilesCmd(flags *AppFlags) *cobra.Command {
	var roomID, roomName, userID string
	cmd := &cobra.Command{
		Use:   "files",
		Short: "List the files subscribed in a room once",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := loadApp(flags)
			if err != nil {
				return err
			}
			defer a.Close()

			svc, err := a.buildService(cmd.Context(), cmd.OutOrStdout())
			if err != nil {
				return err
			}

			report := svc.ListRoomFiles(cmd.Context(), models.Room{ID: roomID, Name: roomName}, models.User{ID: userID})
			fmt.Fprintf(cmd.ErrOrStderr(), "outcome: %s\n", report.Outcome)
			return nil
		},
	}
	cmd.Flags().StringVar(&roomID, "room", "", "Room id")
	cmd.Flags().StringVar(&roomName, "room-name", "", "Room display name")
	cmd.Flags().StringVar(&userID, "user", "", "Id of the user issuing the command")
	_ = cmd.MarkFlagRequired("room")
	_ = cmd.MarkFlagRequired("user")
	return cmd
}

func newExportCmd(flags *AppFlags) *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the subscription store to a Parquet snapshot",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := loadApp(flags)
			if err != nil {
				return err
			}
			defer a.Close()

			backend, err := a.openBackend(cmd.Context())
			if err != nil {
				return err
			}
			records, err := backend.Store.GetAllSubscriptions(cmd.Context())
			if err != nil {
				return common.WrapError(err, "could not read subscriptions")
			}

			path := out
			if path == "" {
				path = a.cfg.StorageConfig.ParquetPath
			}
			snapshot := datastore.NewParquetSnapshot(path, a.cfg.StorageConfig.CompressionCodec, a.zlog)
			if err := snapshot.WriteSnapshot(cmd.Context(), records); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "exported %d subscriptions to %s\n", len(records), path)
			return nil
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "", "Snapshot path (defaults to storage_config.parquet_path)")
	return cmd
}

func newImportCmd(flags *AppFlags) *cobra.Command {
	var in string
	cmd := &cobra.Command{
		Use:   "import",
		Short: "Load subscriptions from a Parquet snapshot into the store",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := loadApp(flags)
			if err != nil {
				return err
			}
			defer a.Close()

			backend, err := a.openBackend(cmd.Context())
			if err != nil {
				return err
			}

			path := in
			if path == "" {
				path = a.cfg.StorageConfig.ParquetPath
			}
			snapshot := datastore.NewParquetSnapshot(path, a.cfg.StorageConfig.CompressionCodec, a.zlog)
			copied, err := datastore.CopySubscriptions(cmd.Context(), snapshot, backend.Store)
			fmt.Fprintf(cmd.OutOrStdout(), "imported %d subscriptions from %s\n", copied, path)
			return err
		},
	}
	cmd.Flags().StringVarP(&in, "in", "i", "", "Snapshot path (defaults to storage_config.parquet_path)")
	return cmd
}

func newTokenCmd(flags *AppFlags) *cobra.Command {
	var userID, token string
	var ttl time.Duration
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Store a Figma access token for a chat user",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := loadApp(flags)
			if err != nil {
				return err
			}
			defer a.Close()

			backend, err := a.openBackend(cmd.Context())
			if err != nil {
				return err
			}

			record := models.AccessToken{UserID: userID, Token: token}
			if ttl > 0 {
				record.ExpiresAt = time.Now().Add(ttl)
			}
			if err := backend.Store.SaveAccessToken(cmd.Context(), record); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "stored token for %s\n", userID)
			return nil
		},
	}
	cmd.Flags().StringVar(&userID, "user", "", "Chat user id")
	cmd.Flags().StringVar(&token, "token", "", "Figma personal access or OAuth token")
	cmd.Flags().DurationVar(&ttl, "ttl", 0, "Token lifetime; 0 means no expiry")
	_ = cmd.MarkFlagRequired("user")
	_ = cmd.MarkFlagRequired("token")
	return cmd
}

