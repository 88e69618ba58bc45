package server

import (
	"strconv"
	"strings"

	"github.com/MeKo-Tech/upca/internal/input"
	"github.com/MeKo-Tech/upca/internal/upca"
)

// Operations shared by the REST handlers and the WebSocket endpoint. Each
// records one upca_codec_operations_total sample.

func (s *Server) encode(req EncodeRequest) (*SymbolResult, error) {
	digits := req.Digits
	if req.Normalize {
		digits = input.Clean(digits, input.DefaultCleanOptions())
	}

	var (
		res *SymbolResult
		err error
	)
	if req.Flat {
		var sym *upca.Symbol
		if sym, err = s.codec.EncodeFlat(digits); err == nil {
			res = resultFromRecord(sym.Record)
			res.Pattern = sym.Pattern
		}
	} else {
		var rec upca.Record
		if rec, err = s.codec.Record(digits); err == nil {
			res = resultFromRecord(rec)
			res.Pattern, err = s.codec.Encode(digits)
		}
	}
	observeCodec("encode", err)
	if err != nil {
		return nil, err
	}
	return res, nil
}

func (s *Server) decode(req DecodeRequest) (*SymbolResult, error) {
	var (
		digits string
		err    error
	)
	switch {
	case len(req.Tokens) > 0:
		digits, err = s.codec.Decode(req.Tokens)
	case strings.ContainsAny(strings.TrimSpace(req.Pattern), " \t\r\n"):
		digits, err = s.codec.DecodeString(req.Pattern)
	default:
		digits, err = s.codec.DecodeFlat(strings.TrimSpace(req.Pattern))
	}
	observeCodec("decode", err)
	if err != nil {
		return nil, err
	}

	res := resultFromDigits(digits)
	valid := s.codec.Verify(digits) == nil
	res.ChecksumValid = &valid
	return res, nil
}

func (s *Server) checksum(req DigitsRequest) (*SymbolResult, error) {
	digits := s.clean(req)
	d, err := s.codec.CheckDigit(digits)
	observeCodec("checksum", err)
	if err != nil {
		return nil, err
	}
	return resultFromDigits(digits + strconv.Itoa(int(d))), nil
}

func (s *Server) validate(req DigitsRequest) (*SymbolResult, error) {
	digits := s.clean(req)
	err := s.codec.Verify(digits)
	observeCodec("validate", err)
	if err != nil {
		return nil, err
	}
	res := resultFromDigits(digits)
	valid := true
	res.ChecksumValid = &valid
	return res, nil
}

func (s *Server) clean(req DigitsRequest) string {
	if req.Normalize {
		return input.Clean(req.Digits, input.DefaultCleanOptions())
	}
	return req.Digits
}

func resultFromRecord(r upca.Record) *SymbolResult {
	return &SymbolResult{
		Digits:           r.String(),
		NumberSystem:     r.NumberSystem,
		ManufacturerCode: r.ManufacturerCode,
		ProductCode:      r.ProductCode,
		CheckDigit:       r.CheckDigit,
	}
}

// resultFromDigits splits a 12-digit string produced by the codec.
func resultFromDigits(d string) *SymbolResult {
	return &SymbolResult{
		Digits:           d,
		NumberSystem:     d[0:1],
		ManufacturerCode: d[1:6],
		ProductCode:      d[6:11],
		CheckDigit:       d[11:12],
	}
}

func observeCodec(op string, err error) {
	status := "ok"
	if err != nil {
		status = upca.Kind(err)
	}
	codecOperationsTotal.WithLabelValues(op, status).Inc()
}
