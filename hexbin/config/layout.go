package config

// AppAreaSize returns the number of bytes available to an application image.
func (m *MemoryLayout) AppAreaSize() uint32 {
	if m.BootLoaderAddr == 0 || m.BootLoaderAddr > m.FlashSize {
		return m.FlashSize
	}
	return m.BootLoaderAddr
}

// PageAligned reports whether size is a whole number of flash pages.
func (m *MemoryLayout) PageAligned(size int) bool {
	if m.PageSize == 0 {
		return true
	}
	return size%int(m.PageSize) == 0
}
