package snowflake

import "strconv"

// Layout describes the bit widths of the four fields packed into an id.
// The sign bit is never used, so the widths may sum to at most 63.
type Layout struct {
	TimestampBits  uint `json:"timestampBits" toml:"timestamp_bits"`
	DatacenterBits uint `json:"datacenterBits" toml:"datacenter_bits"`
	WorkerBits     uint `json:"workerBits" toml:"worker_bits"`
	SequenceBits   uint `json:"sequenceBits" toml:"sequence_bits"`
}

// DefaultLayout is the classic 41/5/5/12 split: ~69 years of milliseconds,
// 32 datacenters, 32 workers per datacenter and 4096 ids per millisecond.
var DefaultLayout = Layout{
	TimestampBits:  41,
	DatacenterBits: 5,
	WorkerBits:     5,
	SequenceBits:   12,
}

const usableBits = 63

// Validate reports the first field that makes the layout unusable.
func (l Layout) Validate() error {
	if l.TimestampBits == 0 {
		return newConfigError("Layout.TimestampBits", "0", "must be at least 1")
	}
	if l.SequenceBits == 0 {
		return newConfigError("Layout.SequenceBits", "0", "must be at least 1")
	}
	if total := l.TotalBits(); total > usableBits {
		return newConfigError("Layout", strconv.FormatUint(uint64(total), 10),
			"timestamp, datacenter, worker and sequence bits must sum to at most 63")
	}
	return nil
}

// TotalBits is the sum of all field widths.
func (l Layout) TotalBits() uint {
	return l.TimestampBits + l.DatacenterBits + l.WorkerBits + l.SequenceBits
}

// WorkerShift is the left shift applied to the worker id.
func (l Layout) WorkerShift() uint { return l.SequenceBits }

// DatacenterShift is the left shift applied to the datacenter id.
func (l Layout) DatacenterShift() uint { return l.SequenceBits + l.WorkerBits }

// TimestampShift is the left shift applied to the timestamp delta.
func (l Layout) TimestampShift() uint { return l.SequenceBits + l.WorkerBits + l.DatacenterBits }

// MaxTimestamp is the largest timestamp delta, in milliseconds past the epoch.
func (l Layout) MaxTimestamp() int64 { return mask(l.TimestampBits) }

// MaxDatacenter is the largest datacenter id.
func (l Layout) MaxDatacenter() int64 { return mask(l.DatacenterBits) }

// MaxWorker is the largest worker id.
func (l Layout) MaxWorker() int64 { return mask(l.WorkerBits) }

// MaxSequence is the largest sequence number within one millisecond.
func (l Layout) MaxSequence() int64 { return mask(l.SequenceBits) }

// Pack assembles an id from its fields. The caller guarantees every field is
// within its range; out-of-range bits are masked off.
func (l Layout) Pack(delta, datacenterID, workerID, sequence int64) int64 {
	return (delta&l.MaxTimestamp())<<l.TimestampShift() |
		(datacenterID&l.MaxDatacenter())<<l.DatacenterShift() |
		(workerID&l.MaxWorker())<<l.WorkerShift() |
		sequence&l.MaxSequence()
}

// Decode splits id back into its fields, adding epoch to the timestamp.
func (l Layout) Decode(id int64, epoch int64) Parts {
	return Parts{
		Timestamp:    (id>>l.TimestampShift())&l.MaxTimestamp() + epoch,
		DatacenterID: (id >> l.DatacenterShift()) & l.MaxDatacenter(),
		WorkerID:     (id >> l.WorkerShift()) & l.MaxWorker(),
		Sequence:     id & l.MaxSequence(),
	}
}

// mask returns 2^bits - 1.
func mask(bits uint) int64 {
	return -1 ^ (-1 << bits)
}
