// Package stylize provides filters that analyze the neighborhood of each
// pixel: Gaussian blur, custom convolution, Kuwahara smoothing, k-means
// color quantization and Canny edge detection.
package stylize
