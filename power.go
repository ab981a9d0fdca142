package main

import (
	"fmt"
	"strings"

	"github.com/platinasystems/log"
)

func (s *Server) reset(parms []string) error {
	if len(parms) != 2 {
		return fmt.Errorf("usage: RESET bcr ASSERT|DEASSERT")
	}
	id, ok := s.clk.LookupReset(strings.ToUpper(parms[0]))
	if !ok {
		return fmt.Errorf("unknown reset %s", parms[0])
	}
	var assert bool
	switch strings.ToUpper(parms[1]) {
	case "ASSERT":
		assert = true
	case "DEASSERT":
	default:
		return fmt.Errorf("invalid reset action %s", parms[1])
	}
	log.Print("info", "reset ", parms[0], " ", strings.ToLower(parms[1]))
	if err := s.clk.Reset(id, assert); err != nil {
		return fmt.Errorf("couldn't reset %s: %w", parms[0], err)
	}
	return nil
}

func (s *Server) power(parms []string) error {
	if len(parms) != 2 {
		return fmt.Errorf("usage: GDSC name ON|OFF")
	}
	id, ok := s.clk.LookupGDSC(strings.ToUpper(parms[0]))
	if !ok {
		return fmt.Errorf("unknown power domain %s", parms[0])
	}
	var on bool
	switch strings.ToUpper(parms[1]) {
	case "ON":
		on = true
	case "OFF":
	default:
		return fmt.Errorf("invalid power state %s", parms[1])
	}
	log.Print("info", "Power ", strings.ToLower(parms[1]), " ", parms[0])
	if err := s.clk.PowerDomain(id, on); err != nil {
		return fmt.Errorf("couldn't switch %s: %w", parms[0], err)
	}
	return nil
}
