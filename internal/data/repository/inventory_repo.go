package repository

import (
	"sort"
	"sync"

	"bus-booking/internal/data/entity"

	"go.uber.org/zap"
)

// InventoryRepository owns trips, their ordered segments, per-segment seat
// counters and a derived search cache. The cache is disposable: it only
// affects discoverability, never seat-count correctness.
type InventoryRepository interface {
	UpsertTrip(trip *entity.Trip)
	FindTrip(tripID string) (*entity.Trip, bool)
	FindAllTrips() []*entity.Trip
	FindTripsByIDs(tripIDs []string) []*entity.Trip

	// UpsertSegments replaces the whole segment set for a trip and
	// invalidates every search-cache entry reachable from the cross
	// product of the new segments' endpoints on that date.
	UpsertSegments(tripID string, segments []*entity.Segment)
	FindSegmentsByTrip(tripID string) []*entity.Segment

	// FindSegmentsForRoute returns the inclusive ordered sub-sequence of
	// segments between the segment departing sourceCityID and the segment
	// arriving at destCityID, or nil when no such route exists.
	FindSegmentsForRoute(tripID, sourceCityID, destCityID string) []*entity.Segment

	// DecrementSeats atomically takes seats from a segment counter. It
	// returns false without mutating when the counter is short. Multi-step
	// reservations must additionally hold the owning trip's lock.
	DecrementSeats(segmentID string, seats int) bool
	IncrementSeats(segmentID string, seats int)

	// SearchTrips is a read-through cache keyed by (source, dest, date).
	SearchTrips(sourceCityID, destCityID, date string) []*entity.Trip
}

type inventoryRepository struct {
	mu sync.RWMutex

	trips        map[string]*entity.Trip
	segments     map[string][]*entity.Segment // by trip ID, sorted by sequence
	segmentsByID map[string]*entity.Segment

	// Endpoint indices, keyed by cityID + "_" + date.
	bySourceDate map[string][]*entity.Segment
	byDestDate   map[string][]*entity.Segment

	// Search cache, keyed by source + "_" + dest + "_" + date.
	searchCache map[string][]string

	log *zap.Logger
}

func NewInventoryRepository(log *zap.Logger) InventoryRepository {
	return &inventoryRepository{
		trips:        make(map[string]*entity.Trip),
		segments:     make(map[string][]*entity.Segment),
		segmentsByID: make(map[string]*entity.Segment),
		bySourceDate: make(map[string][]*entity.Segment),
		byDestDate:   make(map[string][]*entity.Segment),
		searchCache:  make(map[string][]string),
		log:          log.With(zap.String("repository", "inventory")),
	}
}

func (r *inventoryRepository) UpsertTrip(trip *entity.Trip) {
	r.mu.Lock()
	defer r.mu.Unlock()

	copied := *trip
	r.trips[trip.TripID] = &copied
}

func (r *inventoryRepository) FindTrip(tripID string) (*entity.Trip, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	trip, ok := r.trips[tripID]
	if !ok {
		return nil, false
	}
	copied := *trip
	return &copied, true
}

func (r *inventoryRepository) FindAllTrips() []*entity.Trip {
	r.mu.RLock()
	defer r.mu.RUnlock()

	trips := make([]*entity.Trip, 0, len(r.trips))
	for _, trip := range r.trips {
		copied := *trip
		trips = append(trips, &copied)
	}
	sort.Slice(trips, func(i, j int) bool { return trips[i].TripID < trips[j].TripID })
	return trips
}

func (r *inventoryRepository) FindTripsByIDs(tripIDs []string) []*entity.Trip {
	r.mu.RLock()
	defer r.mu.RUnlock()

	trips := make([]*entity.Trip, 0, len(tripIDs))
	for _, id := range tripIDs {
		if trip, ok := r.trips[id]; ok {
			copied := *trip
			trips = append(trips, &copied)
		}
	}
	return trips
}

func (r *inventoryRepository) UpsertSegments(tripID string, segments []*entity.Segment) {
	r.mu.Lock()
	defer r.mu.Unlock()

	// Drop the previous segment set and its index entries.
	previous := r.segments[tripID]
	for _, old := range previous {
		delete(r.segmentsByID, old.SegmentID)
		r.removeFromIndex(r.bySourceDate, endpointKey(old.SourceCityID, old.Date), old.SegmentID)
		r.removeFromIndex(r.byDestDate, endpointKey(old.DestCityID, old.Date), old.SegmentID)
	}

	stored := make([]*entity.Segment, 0, len(segments))
	for _, seg := range segments {
		copied := *seg
		stored = append(stored, &copied)
	}
	sort.Slice(stored, func(i, j int) bool { return stored[i].Sequence < stored[j].Sequence })
	r.segments[tripID] = stored

	for _, seg := range stored {
		r.segmentsByID[seg.SegmentID] = seg
		srcKey := endpointKey(seg.SourceCityID, seg.Date)
		dstKey := endpointKey(seg.DestCityID, seg.Date)
		r.bySourceDate[srcKey] = append(r.bySourceDate[srcKey], seg)
		r.byDestDate[dstKey] = append(r.byDestDate[dstKey], seg)
	}

	// Any two endpoints among the trip's segments, old or new, can form a
	// valid search query, so the whole cross product of (source, dest)
	// pairs on the date must be invalidated, not just adjacent legs.
	invalidated := 0
	affected := append(append([]*entity.Segment{}, previous...), stored...)
	for _, src := range affected {
		for _, dst := range affected {
			key := searchKey(src.SourceCityID, dst.DestCityID, src.Date)
			if _, ok := r.searchCache[key]; ok {
				invalidated++
			}
			delete(r.searchCache, key)
		}
	}

	r.log.Debug("Upserted segments",
		zap.String("trip_id", tripID),
		zap.Int("segments", len(stored)),
		zap.Int("cache_entries_invalidated", invalidated),
	)
}

func (r *inventoryRepository) FindSegmentsByTrip(tripID string) []*entity.Segment {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return copySegments(r.segments[tripID])
}

func (r *inventoryRepository) FindSegmentsForRoute(tripID, sourceCityID, destCityID string) []*entity.Segment {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return copySegments(subRoute(r.segments[tripID], sourceCityID, destCityID))
}

func (r *inventoryRepository) DecrementSeats(segmentID string, seats int) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	seg, ok := r.segmentsByID[segmentID]
	if !ok || seg.AvailableSeats < seats {
		return false
	}
	seg.AvailableSeats -= seats
	return true
}

func (r *inventoryRepository) IncrementSeats(segmentID string, seats int) {
	r.mu.Lock()
	defer r.mu.Unlock()

	seg, ok := r.segmentsByID[segmentID]
	if !ok {
		return
	}
	seg.AvailableSeats += seats
	// The counter never exceeds capacity, even against a stray release.
	if seg.AvailableSeats > seg.Capacity {
		r.log.Warn("Seat release clamped at capacity",
			zap.String("segment_id", segmentID),
			zap.Int("capacity", seg.Capacity),
		)
		seg.AvailableSeats = seg.Capacity
	}
}

func (r *inventoryRepository) SearchTrips(sourceCityID, destCityID, date string) []*entity.Trip {
	key := searchKey(sourceCityID, destCityID, date)

	r.mu.RLock()
	tripIDs, cached := r.searchCache[key]
	r.mu.RUnlock()

	if !cached {
		r.mu.Lock()
		// Another searcher may have filled the entry in between.
		tripIDs, cached = r.searchCache[key]
		if !cached {
			tripIDs = r.computeSearch(sourceCityID, destCityID, date)
			r.searchCache[key] = tripIDs
		}
		r.mu.Unlock()
	}

	return r.FindTripsByIDs(tripIDs)
}

// computeSearch intersects the source and dest endpoint indices and keeps
// trips whose matching segments are in route order. Caller holds the write
// lock.
func (r *inventoryRepository) computeSearch(sourceCityID, destCityID, date string) []string {
	sourceTrips := make(map[string]bool)
	for _, seg := range r.bySourceDate[endpointKey(sourceCityID, date)] {
		sourceTrips[seg.TripID] = true
	}

	var tripIDs []string
	seen := make(map[string]bool)
	for _, seg := range r.byDestDate[endpointKey(destCityID, date)] {
		if !sourceTrips[seg.TripID] || seen[seg.TripID] {
			continue
		}
		seen[seg.TripID] = true
		if subRoute(r.segments[seg.TripID], sourceCityID, destCityID) != nil {
			tripIDs = append(tripIDs, seg.TripID)
		}
	}
	sort.Strings(tripIDs)
	return tripIDs
}

// subRoute slices the inclusive ordered run of segments between the one
// departing sourceCityID and the one arriving at destCityID. Segments are
// already sorted by sequence.
func subRoute(all []*entity.Segment, sourceCityID, destCityID string) []*entity.Segment {
	var source, dest *entity.Segment
	for _, seg := range all {
		if source == nil && seg.SourceCityID == sourceCityID {
			source = seg
		}
		if dest == nil && seg.DestCityID == destCityID {
			dest = seg
		}
	}
	if source == nil || dest == nil || source.Sequence > dest.Sequence {
		return nil
	}

	var route []*entity.Segment
	for _, seg := range all {
		if seg.Sequence >= source.Sequence && seg.Sequence <= dest.Sequence {
			route = append(route, seg)
		}
	}
	return route
}

func (r *inventoryRepository) removeFromIndex(index map[string][]*entity.Segment, key, segmentID string) {
	entries := index[key]
	for i, seg := range entries {
		if seg.SegmentID == segmentID {
			index[key] = append(entries[:i], entries[i+1:]...)
			break
		}
	}
	if len(index[key]) == 0 {
		delete(index, key)
	}
}

func copySegments(segments []*entity.Segment) []*entity.Segment {
	if segments == nil {
		return nil
	}
	out := make([]*entity.Segment, 0, len(segments))
	for _, seg := range segments {
		copied := *seg
		out = append(out, &copied)
	}
	return out
}

// BottleneckSeats returns the availability of a sub-route: the minimum
// AvailableSeats across its segments. Zero for an empty route.
func BottleneckSeats(segments []*entity.Segment) int {
	if len(segments) == 0 {
		return 0
	}
	min := segments[0].AvailableSeats
	for _, seg := range segments[1:] {
		if seg.AvailableSeats < min {
			min = seg.AvailableSeats
		}
	}
	return min
}

func endpointKey(cityID, date string) string {
	return cityID + "_" + date
}

func searchKey(sourceCityID, destCityID, date string) string {
	return sourceCityID + "_" + destCityID + "_" + date
}
