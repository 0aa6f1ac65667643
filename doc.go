// Package marbling simulates paper marbling with circular ink drops.
//
// # Overview
//
// Every drop is a ring of vertices around its origin. When a new drop is
// placed, each drop already on the surface is pushed radially away from the
// new drop's center, so older outlines wrap and stretch around newer ones.
// The displacement is permanent: a drop's ring carries the accumulated
// distortion of every drop spawned after it.
//
// # Quick Start
//
//	eng, err := marbling.NewEngine(marbling.WithDetail(400), marbling.WithDropCap(40))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer eng.Close()
//
//	s := raster.New(800, 600)
//	for frame := range 600 {
//	    if frame%20 == 0 {
//	        _, _ = eng.SpawnDefault(400, 300, marbling.RGB(200, 40, 90))
//	    }
//	    if err := eng.Frame(s); err != nil {
//	        log.Fatal(err)
//	    }
//	}
//	_ = s.SavePNG("marbling.png")
//
// # The Transform
//
// For a new drop with center C and radius r, a vertex at absolute position
// P moves to
//
//	C + (P - C) * sqrt(1 + r² / |P - C|²)
//
// The factor is always at least 1 and tends to 1 far from C. The squared
// distance is floored at Config.Epsilon so a vertex lying exactly on C stays
// finite.
//
// # Drop Lifecycle
//
// A drop starts Young with opacity 0 and fades in by OpacityIncrease per
// frame. Once it has been displaced more than MatureAfter times (DropCap/3
// by default) it turns Mature and fades out by OpacityDecrease per frame.
// The buffer keeps at most DropCap drops; spawning beyond that evicts the
// oldest, which is then never touched again.
//
// # Frame Loop
//
// Hosts call Frame once per frame, which clears the surface, ages every
// drop once and renders them oldest first, and call Spawn at most once in
// between. Tick and Render are available separately for hosts that need
// to decouple simulation from drawing.
//
// # Coordinate System
//
// Canvas coordinates: origin at top-left, X increases right, Y increases
// down. Drop vertices are stored relative to the drop's origin.
package marbling
