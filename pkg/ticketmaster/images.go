package ticketmaster

// BestImage returns the image with the largest width*height product. When
// several images tie for the maximum, the first one encountered wins. The
// second return value is false for an empty list.
func BestImage(images []Image) (Image, bool) {
	if len(images) == 0 {
		return Image{}, false
	}
	best := images[0]
	for _, img := range images[1:] {
		if img.Width*img.Height > best.Width*best.Height {
			best = img
		}
	}
	return best, true
}

// BestImages returns every image tied for the largest width*height product,
// in encounter order.
func BestImages(images []Image) []Image {
	if len(images) == 0 {
		return nil
	}
	max := 0
	for _, img := range images {
		if a := img.Width * img.Height; a > max {
			max = a
		}
	}
	var out []Image
	for _, img := range images {
		if img.Width*img.Height == max {
			out = append(out, img)
		}
	}
	return out
}
