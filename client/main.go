package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"grps/client/app"
	"grps/common/config"
	"grps/common/logs"
	"grps/common/metrics"
	"grps/framework/grpsError"
)

var rootCmd = &cobra.Command{
	Use:           "grps-client",
	Short:         "grps predict 客户端",
	Long:          `grps predict 客户端，通过grpc发送str_data或者bin_data并打印回包`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

var strCmd = &cobra.Command{
	Use:   "str <server> <inp>",
	Short: "predict with str_data",
	RunE: func(cmd *cobra.Command, args []string) error {
		return run(cmd, app.ModeStr, args)
	},
}

var binCmd = &cobra.Command{
	Use:   "bin <server> <file_path>",
	Short: "predict with bin_data read from file",
	RunE: func(cmd *cobra.Command, args []string) error {
		return run(cmd, app.ModeBin, args)
	},
}

var configFile string

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&configFile, "config", "", "app config yml file")
	flags.Duration("timeout", 5*time.Second, "predict call timeout")
	flags.Duration("grace", 5*time.Second, "grace period when closing the connection")
	flags.Duration("dialTimeout", 3*time.Second, "connect timeout, used with --block")
	flags.Bool("block", false, "wait for the connection to be ready before predict")
	flags.String("logLevel", "info", "log level")
	flags.Int("metricPort", 0, "serve /metrics and /debug/statsviz on this port, 0 disables")
	rootCmd.AddCommand(strCmd, binCmd)
}

func run(cmd *cobra.Command, mode app.Mode, args []string) error {
	//参数个数不对 打印用法后正常退出
	if len(args) != 2 {
		fmt.Fprint(cmd.OutOrStdout(), cmd.UsageString())
		return nil
	}
	//1.加载配置
	if err := config.InitConfig(configFile, cmd.Flags()); err != nil {
		return err
	}
	conf := config.Conf
	logs.InitLog(conf.AppName)
	//2.启动监控
	if conf.MetricPort > 0 {
		go func() {
			if err := metrics.Serve(fmt.Sprintf("0.0.0.0:%d", conf.MetricPort)); err != nil {
				logs.Error("metrics serve err:%v", err)
			}
		}()
	}
	//3.predict
	return app.Run(cmd.Context(), cmd.OutOrStdout(), conf.Grpc, app.Request{
		Mode:   mode,
		Target: args[0],
		Input:  args[1],
	})
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		logs.Error("%v", err)
		os.Exit(grpsError.Code(err))
	}
}
