// Package grpcserver adapts BookService to gRPC. The API is read-only:
// mutations enter through the event feed, never through this surface.
package grpcserver

import (
	"context"

	"go.uber.org/zap"

	"fenrir/api/pb"
	"fenrir/domain/dlob"
	"fenrir/service"
)

// Server adapts BookService to gRPC.
type Server struct {
	pb.UnimplementedBookQueryServer
	svc *service.BookService
	log *zap.Logger
}

func NewServer(svc *service.BookService, log *zap.Logger) *Server {
	return &Server{svc: svc, log: log}
}

// -------------------- Queries --------------------

func (s *Server) GetOrderBook(
	ctx context.Context,
	req *pb.GetOrderBookRequest,
) (*pb.GetOrderBookResponse, error) {
	resp := s.svc.OrderBook(
		dlob.MarketType(req.MarketType),
		uint16(req.MarketIndex),
		toReference(req.HasReference, req.VBid, req.VAsk),
	)

	s.log.Debug("GetOrderBook",
		zap.Uint32("market_index", req.MarketIndex),
		zap.Int("bids", len(resp.Bids)),
		zap.Int("asks", len(resp.Asks)))

	return resp, nil
}

func (s *Server) FindFills(
	ctx context.Context,
	req *pb.FindFillsRequest,
) (*pb.FindFillsResponse, error) {
	fills, oracle, slot := s.svc.FindFills(
		dlob.MarketType(req.MarketType),
		uint16(req.MarketIndex),
		toReference(req.HasReference, req.VBid, req.VAsk),
	)

	resp := &pb.FindFillsResponse{
		Pairs: make([]*pb.FillPair, 0, len(fills)),
		Slot:  slot,
	}
	for _, f := range fills {
		resp.Pairs = append(resp.Pairs, service.FillToPB(f, oracle, slot))
	}
	return resp, nil
}

func (s *Server) FindTriggers(
	ctx context.Context,
	req *pb.FindTriggersRequest,
) (*pb.FindTriggersResponse, error) {
	triggers, oracle, slot := s.svc.FindTriggers(
		dlob.MarketType(req.MarketType),
		uint16(req.MarketIndex),
	)

	resp := &pb.FindTriggersResponse{
		Nodes:       make([]*pb.BookNode, 0, len(triggers)),
		OraclePrice: oracle.Price,
	}
	for _, t := range triggers {
		resp.Nodes = append(resp.Nodes, service.NodeToPB(t.Node, oracle, slot))
	}
	return resp, nil
}

// -------------------- Converters --------------------

func toReference(has bool, vBid, vAsk int64) *service.Reference {
	if !has {
		return nil
	}
	return &service.Reference{VBid: vBid, VAsk: vAsk}
}
