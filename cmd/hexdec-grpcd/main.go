package main

import (
	"flag"
	"fmt"
	"io"
	"net"
	"os"
	"os/signal"
	"syscall"

	"google.golang.org/grpc"

	"xdao.co/hexdec/config"
	"xdao.co/hexdec/hexdump"
	"xdao.co/hexdec/rpc"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stderr))
}

func run(args []string, errOut io.Writer) int {
	fs := flag.NewFlagSet("hexdec-grpcd", flag.ContinueOnError)
	fs.SetOutput(errOut)
	listen := fs.String("listen", "127.0.0.1:7780", "listen address")
	configPath := fs.String("config", "", "JSON defaults file (scheme is used as the default scheme)")
	scheme := fs.String("scheme", "", "default scheme when requests omit one: word or byte")
	maxMsgBytes := fs.Int("max-msg-bytes", 0, "max gRPC message size in bytes (recv); 0 uses grpc defaults")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	cfg := config.Default()
	if *configPath != "" {
		loaded, err := config.LoadFile(*configPath)
		if err != nil {
			fmt.Fprintln(errOut, err)
			return 2
		}
		cfg = loaded
	}
	if *scheme != "" {
		cfg.Scheme = *scheme
	}
	defaultScheme, err := hexdump.ParseScheme(cfg.Scheme)
	if err != nil {
		fmt.Fprintln(errOut, err)
		return 2
	}

	lis, err := net.Listen("tcp", *listen)
	if err != nil {
		fmt.Fprintln(errOut, err)
		return 1
	}
	defer lis.Close()

	opts := []grpc.ServerOption{grpc.UnaryInterceptor(rpc.LoggingInterceptor(errOut))}
	if *maxMsgBytes > 0 {
		opts = append(opts, grpc.MaxRecvMsgSize(*maxMsgBytes))
	}
	s := grpc.NewServer(opts...)
	rpc.RegisterConverterServer(s, &rpc.Server{DefaultScheme: defaultScheme})

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigs
		s.GracefulStop()
	}()

	fmt.Fprintf(errOut, "hexdec-grpcd listening on %s (scheme=%s)\n", lis.Addr().String(), defaultScheme)
	if err := s.Serve(lis); err != nil {
		fmt.Fprintln(errOut, err)
		return 1
	}
	return 0
}
