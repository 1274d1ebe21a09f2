package app

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"grps/common/biz"
	"grps/common/config"
	"grps/common/logs"
	"grps/framework/protocol"
	"grps/framework/remote"
)

type Mode string

const (
	ModeStr Mode = "str" //输入是文本 走str_data
	ModeBin Mode = "bin" //输入是文件路径 文件内容走bin_data
)

type Request struct {
	Mode   Mode
	Target string
	Input  string
}

// Run 一次完整的predict调用：建连 -> 发送 -> 打印结果 -> 关闭连接
func Run(ctx context.Context, out io.Writer, conf config.GrpcConf, req Request) error {
	//1.构造请求
	envelope, err := buildEnvelope(req)
	if err != nil {
		return err
	}
	//2.建立连接 任何退出路径都要关闭
	cli, err := remote.Dial(ctx, req.Target,
		remote.WithTimeout(conf.Timeout),
		remote.WithDialTimeout(conf.DialTimeout),
		remote.WithBlock(conf.Block),
	)
	if err != nil {
		return err
	}
	defer cli.Close(conf.GracePeriod)
	logs.Info("grpc target: %s, mode: %s", req.Target, req.Mode)
	//3.同步调用
	begin := time.Now()
	resp, err := cli.Predict(ctx, envelope)
	if err != nil {
		return err
	}
	report(out, resp, time.Since(begin))
	return nil
}

func buildEnvelope(req Request) (*protocol.Envelope, error) {
	switch req.Mode {
	case ModeStr:
		return protocol.EncodeText(req.Input), nil
	case ModeBin:
		data, err := os.ReadFile(req.Input)
		if err != nil {
			return nil, biz.IOError.Wrap(req.Input, err)
		}
		return protocol.EncodeBinary(data), nil
	}
	return nil, biz.Fail.Wrap("", fmt.Errorf("unknown mode %q", req.Mode))
}

func report(out io.Writer, resp *protocol.Envelope, latency time.Duration) {
	p := protocol.Decode(resp)
	switch p.Kind {
	case protocol.KindText:
		fmt.Fprintf(out, "Predict response: %s, decoded str_data: %s", resp, p.Text)
	case protocol.KindBinary:
		fmt.Fprintf(out, "Predict response: %s, decoded bin_data: %d bytes", resp, len(p.Binary))
	default:
		fmt.Fprintf(out, "Predict response: %s, no data", resp)
	}
	fmt.Fprintf(out, ", latency: %d us\n", latency.Microseconds())
}
